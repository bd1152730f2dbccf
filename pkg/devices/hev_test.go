package devices

import (
	"testing"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHevAtClock pins the device clock so cycle expiry is deterministic.
func newHevAtClock(t *testing.T, now *time.Time) *Device {
	t.Helper()
	d, err := NewHevLight("d073d5400001")
	require.NoError(t, err)
	d.now = func() time.Time { return *now }
	return d
}

func TestHevCycleLifetime(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := newHevAtClock(t, &clock)

	// No cycle running at boot.
	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleType, true), nil)
	state := responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Zero(t, state.RemainingS)

	// Start a 120s cycle.
	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleType, true),
		&packets.LightSetHevCycle{Enable: 1, DurationS: 120})
	state = responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Equal(t, uint32(120), state.DurationS)
	assert.Equal(t, uint32(120), state.RemainingS)

	// The running flag expires on its own as the clock advances.
	clock = clock.Add(50 * time.Second)
	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleType, true), nil)
	state = responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Equal(t, uint32(70), state.RemainingS)

	clock = clock.Add(100 * time.Second)
	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleType, true), nil)
	state = responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Zero(t, state.RemainingS)

	// A cycle that ran out its clock reports success.
	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetLastHevCycleResultType, true), nil)
	last := responses[0].Payload.(*packets.LightStateLastHevCycleResult)
	assert.Equal(t, packets.HevResultSuccess, last.Result)
}

func TestHevCycleInterrupted(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := newHevAtClock(t, &clock)

	d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleType, false),
		&packets.LightSetHevCycle{Enable: 1, DurationS: 120})

	clock = clock.Add(10 * time.Second)
	d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleType, false),
		&packets.LightSetHevCycle{Enable: 0})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleType, true), nil)
	state := responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Zero(t, state.RemainingS)

	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetLastHevCycleResultType, true), nil)
	last := responses[0].Payload.(*packets.LightStateLastHevCycleResult)
	assert.Equal(t, packets.HevResultInterruptedByLAN, last.Result)
}

func TestHevCycleZeroDurationUsesConfigured(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := newHevAtClock(t, &clock)

	d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleConfigurationType, false),
		&packets.LightSetHevCycleConfiguration{Indication: 1, DurationS: 300})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleType, true),
		&packets.LightSetHevCycle{Enable: 1, DurationS: 0})
	state := responses[0].Payload.(*packets.LightStateHevCycle)
	assert.Equal(t, uint32(300), state.DurationS)
}

func TestHevConfiguration(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := newHevAtClock(t, &clock)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleConfigurationType, true), nil)
	cfg := responses[0].Payload.(*packets.LightStateHevCycleConfiguration)
	assert.Equal(t, uint8(1), cfg.Indication)
	assert.Equal(t, uint32(7200), cfg.DurationS)

	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightSetHevCycleConfigurationType, true),
		&packets.LightSetHevCycleConfiguration{Indication: 0, DurationS: 600})
	cfg = responses[0].Payload.(*packets.LightStateHevCycleConfiguration)
	assert.Equal(t, uint8(0), cfg.Indication)
	assert.Equal(t, uint32(600), cfg.DurationS)
}

func TestHevRejectedWithoutCapability(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5400002") })

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetHevCycleType, true), nil)
	assert.Empty(t, responses, "non-HEV lights ignore HEV requests by default")
}
