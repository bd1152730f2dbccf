package devices

import (
	"net"
	"time"
)

// Packet directions recorded in a PacketEvent.
const (
	DirectionRx = "rx"
	DirectionTx = "tx"
)

// PacketEvent records one packet crossing the server socket.
type PacketEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	Direction  string       `json:"direction"`
	PacketType uint16       `json:"packet_type"`
	PacketName string       `json:"packet_name"`
	Target     string       `json:"target,omitempty"`
	Serial     string       `json:"serial,omitempty"`
	Addr       *net.UDPAddr `json:"-"`
}

// ActivityObserver receives packet activity from the server. Callbacks are
// synchronous; observers wanting asynchronous fan-out hand the work off
// themselves.
type ActivityObserver interface {
	OnPacketReceived(event PacketEvent)
	OnPacketSent(event PacketEvent)
}

// ActivityRecorder is the optional extension an ActivityObserver
// implements when it can report recent events back.
type ActivityRecorder interface {
	GetRecentActivity() []PacketEvent
}

// LifecycleObserver receives device add/remove callbacks from the manager,
// invoked synchronously on the calling goroutine.
type LifecycleObserver interface {
	OnDeviceAdded(d *Device)
	OnDeviceRemoved(serial string)
}

// StateChangeObserver is notified after a handler mutated device state,
// with the request packet type and the transition duration the request
// carried. The engine does not interpolate state; observers synthesize
// animation timelines externally from the duration.
type StateChangeObserver interface {
	OnStateChanged(d *Device, requestType uint16, durationMs uint32)
}

// StateChangeFunc adapts a function to the StateChangeObserver interface.
type StateChangeFunc func(d *Device, requestType uint16, durationMs uint32)

func (f StateChangeFunc) OnStateChanged(d *Device, requestType uint16, durationMs uint32) {
	f(d, requestType, durationMs)
}
