package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"gopkg.in/yaml.v3"
)

// FileScenarioStore persists the whole scenario hierarchy into a single
// YAML file.
type FileScenarioStore struct {
	path string
	mu   sync.Mutex
}

// NewFileScenarioStore returns a store writing to path, creating the
// parent directory if needed.
func NewFileScenarioStore(path string) (*FileScenarioStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving scenario file: %w", err)
		}
		path = filepath.Join(home, ".lifx-emulator", "scenarios.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating scenario directory: %w", err)
	}
	return &FileScenarioStore{path: path}, nil
}

// Path returns the scenario file path.
func (f *FileScenarioStore) Path() string {
	return f.path
}

// Save writes the hierarchy atomically via a temp file rename.
func (f *FileScenarioStore) Save(_ context.Context, snap scenarios.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding scenarios: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing scenarios: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// Load reads the hierarchy, returning an empty snapshot when the file does
// not exist yet.
func (f *FileScenarioStore) Load(_ context.Context) (scenarios.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return scenarios.Snapshot{}, nil
	}
	if err != nil {
		return scenarios.Snapshot{}, fmt.Errorf("reading scenarios: %w", err)
	}

	var snap scenarios.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return scenarios.Snapshot{}, fmt.Errorf("decoding scenarios: %w", err)
	}
	return snap, nil
}
