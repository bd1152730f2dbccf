package scenarios

import "context"

// Store is the scenario persistence hook, invoked by the management
// collaborator after any scenario mutation. Implementations live outside
// the core; errors must never reach the packet path.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}
