package devices

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLifecycle struct {
	added   []string
	removed []string
}

func (r *recordingLifecycle) OnDeviceAdded(d *Device) {
	r.added = append(r.added, d.Serial().String())
}

func (r *recordingLifecycle) OnDeviceRemoved(serial string) {
	r.removed = append(r.removed, serial)
}

func TestManagerAddRemove(t *testing.T) {
	m := NewManager()
	obs := &recordingLifecycle{}
	m.AddObserver(obs)

	d1 := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5000001") })
	d2 := mustDevice(t, func() (*Device, error) { return NewSwitch("d073d5000002") })

	require.NoError(t, m.Add(d1))
	require.NoError(t, m.Add(d2))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"d073d5000001", "d073d5000002"}, obs.added)

	// One device per serial.
	dup := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5000001") })
	err := m.Add(dup)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
	assert.Equal(t, 2, m.Len())

	got, err := m.Remove("d073d5000001")
	require.NoError(t, err)
	assert.Same(t, d1, got)
	assert.Equal(t, []string{"d073d5000001"}, obs.removed)

	_, err = m.Remove("d073d5000001")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestManagerListKeepsInsertionOrder(t *testing.T) {
	m := NewManager()
	serials := []string{"d073d5000003", "d073d5000001", "d073d5000002"}
	for _, serial := range serials {
		d := mustDevice(t, func() (*Device, error) { return NewColorLight(serial) })
		require.NoError(t, m.Add(d))
	}

	var got []string
	for _, d := range m.List() {
		got = append(got, d.Serial().String())
	}
	assert.Equal(t, serials, got)
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.Get("d073d5000001"))

	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5000001") })
	require.NoError(t, m.Add(d))
	assert.Same(t, d, m.Get("d073d5000001"))
}

func TestActivityLoggerBounded(t *testing.T) {
	l := NewActivityLogger(3)
	for i := 0; i < 5; i++ {
		l.OnPacketReceived(PacketEvent{PacketType: uint16(i)})
	}

	events := l.GetRecentActivity()
	require.Len(t, events, 3)
	assert.Equal(t, uint16(2), events[0].PacketType, "oldest events evicted first")
	assert.Equal(t, uint16(4), events[2].PacketType)
}
