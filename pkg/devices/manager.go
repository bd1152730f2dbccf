package devices

import (
	"sync"

	"github.com/juju/errors"
)

// Manager owns the device set of a server: a serial-keyed map plus the
// insertion order the server iterates recipients in. Lifecycle callbacks
// run synchronously on the calling goroutine.
type Manager struct {
	mu      sync.RWMutex
	devices map[string]*Device
	order   []string

	observers []LifecycleObserver
}

// NewManager returns an empty device manager.
func NewManager() *Manager {
	return &Manager{devices: make(map[string]*Device)}
}

// AddObserver registers a lifecycle observer.
func (m *Manager) AddObserver(o LifecycleObserver) {
	m.mu.Lock()
	m.observers = append(m.observers, o)
	m.mu.Unlock()
}

// Add registers a device. Adding a serial twice fails with AlreadyExists.
func (m *Manager) Add(d *Device) error {
	serial := d.Serial().String()

	m.mu.Lock()
	if _, ok := m.devices[serial]; ok {
		m.mu.Unlock()
		return errors.AlreadyExistsf("device %s", serial)
	}
	m.devices[serial] = d
	m.order = append(m.order, serial)
	observers := append([]LifecycleObserver(nil), m.observers...)
	m.mu.Unlock()

	for _, o := range observers {
		o.OnDeviceAdded(d)
	}
	return nil
}

// Remove unregisters a device by serial and returns it.
func (m *Manager) Remove(serial string) (*Device, error) {
	m.mu.Lock()
	d, ok := m.devices[serial]
	if !ok {
		m.mu.Unlock()
		return nil, errors.NotFoundf("device %s", serial)
	}
	delete(m.devices, serial)
	for i, s := range m.order {
		if s == serial {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	observers := append([]LifecycleObserver(nil), m.observers...)
	m.mu.Unlock()

	for _, o := range observers {
		o.OnDeviceRemoved(serial)
	}
	return d, nil
}

// Get returns the device with the given serial, or nil.
func (m *Manager) Get(serial string) *Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices[serial]
}

// List returns every device in insertion order.
func (m *Manager) List() []*Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Device, 0, len(m.order))
	for _, serial := range m.order {
		out = append(out, m.devices[serial])
	}
	return out
}

// Len returns the number of registered devices.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.devices)
}
