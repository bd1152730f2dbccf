package devices

import (
	"testing"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropFilterSwallowsRequest(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300001") })
	withDeviceScenario(t, d, &scenarios.Config{
		DropPackets: map[uint16]float64{packets.DeviceGetPowerType: 1.0},
	})

	h := reqHeader(d, packets.DeviceGetPowerType, true)
	h.SetAckRequired(true)

	responses, dropped := d.ProcessPacket(h, nil)
	assert.True(t, dropped)
	assert.Empty(t, responses, "a dropped request produces nothing, ack included")
}

func TestDropFilterZeroProbabilityNeverDrops(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300002") })
	withDeviceScenario(t, d, &scenarios.Config{
		DropPackets: map[uint16]float64{packets.DeviceGetPowerType: 0},
	})

	for range 20 {
		responses, dropped := d.ProcessPacket(reqHeader(d, packets.DeviceGetPowerType, true), nil)
		assert.False(t, dropped)
		assert.Len(t, responses, 1)
	}
}

func TestEngineEmitsAckWhenScenarioTargetsAckType(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300003") })
	withDeviceScenario(t, d, &scenarios.Config{
		ResponseDelays: map[uint16]float64{packets.DeviceAcknowledgementType: 0},
	})
	assert.True(t, d.ScenarioTargetsAck())

	h := reqHeader(d, packets.DeviceGetPowerType, true)
	h.SetAckRequired(true)

	responses, _ := d.ProcessPacket(h, nil)
	require.Len(t, responses, 2)
	assert.Equal(t, packets.DeviceAcknowledgementType, responses[0].Header.Type,
		"engine-inserted ack precedes handler responses")
	assert.Equal(t, packets.DeviceStatePowerType, responses[1].Header.Type)
}

func TestEngineOmitsAckWhenScenarioDoesNotTargetIt(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300004") })
	assert.False(t, d.ScenarioTargetsAck())

	h := reqHeader(d, packets.DeviceGetPowerType, true)
	h.SetAckRequired(true)

	responses, _ := d.ProcessPacket(h, nil)
	require.Len(t, responses, 1, "the server, not the engine, acks in the default split")
	assert.Equal(t, packets.DeviceStatePowerType, responses[0].Header.Type)
}

func TestEngineDropsTargetedAck(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300005") })
	withDeviceScenario(t, d, &scenarios.Config{
		DropPackets: map[uint16]float64{packets.DeviceAcknowledgementType: 1.0},
	})

	h := reqHeader(d, packets.DeviceGetPowerType, true)
	h.SetAckRequired(true)

	responses, dropped := d.ProcessPacket(h, nil)
	assert.False(t, dropped)
	require.Len(t, responses, 1, "ack swallowed, state response kept")
	assert.Equal(t, packets.DeviceStatePowerType, responses[0].Header.Type)
}

func TestPartialResponsesTruncateMultizone(t *testing.T) {
	d := newMultizone(t, "d073d5300006", 120, false)
	withDeviceScenario(t, d, &scenarios.Config{
		PartialResponses: []uint16{packets.MultiZoneStateMultiZoneType},
	})

	get := &packets.MultiZoneGetColorZones{StartIndex: 0, EndIndex: 119}

	counts := make(map[int]bool)
	for range 30 {
		responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetColorZonesType, true), get)
		mz := responsesOfType(responses, packets.MultiZoneStateMultiZoneType)
		require.GreaterOrEqual(t, len(mz), 1)
		require.Less(t, len(mz), 15, "truncation keeps k in [1, N-1]")
		counts[len(mz)] = true
	}
	assert.Greater(t, len(counts), 1, "repeated truncations vary")
}

func TestPartialResponsesWithoutScenarioKeepsAll(t *testing.T) {
	d := newMultizone(t, "d073d5300007", 120, false)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetColorZonesType, true),
		&packets.MultiZoneGetColorZones{StartIndex: 0, EndIndex: 119})
	assert.Len(t, responsesOfType(responses, packets.MultiZoneStateMultiZoneType), 15)
}

func TestPartialResponsesTwoPacketsAlwaysOne(t *testing.T) {
	d := newMultizone(t, "d073d5300008", 120, true)
	withDeviceScenario(t, d, &scenarios.Config{
		PartialResponses: []uint16{packets.MultiZoneStateExtendedColorZonesType},
	})

	for range 10 {
		responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetExtendedColorZonesType, true), nil)
		ext := responsesOfType(responses, packets.MultiZoneStateExtendedColorZonesType)
		assert.Len(t, ext, 1, "N=2 truncates to exactly 1")
	}
}

func TestPartialResponsesApplyPerTypeIndependently(t *testing.T) {
	d := newMultizone(t, "d073d5300009", 120, true)
	withDeviceScenario(t, d, &scenarios.Config{
		PartialResponses: []uint16{packets.MultiZoneStateMultiZoneType},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetExtendedColorZonesType, true), nil)
	ext := responsesOfType(responses, packets.MultiZoneStateExtendedColorZonesType)
	assert.Len(t, ext, 2, "a standard-multizone partial leaves extended responses whole")
}

func TestPartialResponsesSingleResponseUntouched(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d530000a") })
	withDeviceScenario(t, d, &scenarios.Config{
		PartialResponses: []uint16{packets.LightStateType},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	assert.Len(t, responses, 1, "N == 1 means no truncation")
}

func TestPartialResponsesTruncateTiles(t *testing.T) {
	d := newTileChain(t, "d073d530000b", 5)
	withDeviceScenario(t, d, &scenarios.Config{
		PartialResponses: []uint16{packets.TileState64Type},
	})

	for range 10 {
		responses, _ := d.ProcessPacket(reqHeader(d, packets.TileGet64Type, true), get64(0, 5))
		state64 := responsesOfType(responses, packets.TileState64Type)
		assert.GreaterOrEqual(t, len(state64), 1)
		assert.Less(t, len(state64), 5)
	}
}

func TestMalformedPacketsKeepLength(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d530000c") })
	withDeviceScenario(t, d, &scenarios.Config{
		MalformedPackets: []uint16{packets.LightStateType},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	require.Len(t, responses, 1)

	opaque, ok := responses[0].Payload.(*packets.Opaque)
	require.True(t, ok, "malformed responses are raw marker bytes")
	assert.Equal(t, packets.LightStateType, opaque.PayloadType())
	assert.Len(t, opaque.Data, 52, "corrupted payload keeps the documented length")
	for _, b := range opaque.Data {
		assert.Equal(t, malformedMarker, b)
	}
}

func TestInvalidFieldValuesStayDecodable(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d530000d") })
	withDeviceScenario(t, d, &scenarios.Config{
		InvalidFieldValues: []uint16{packets.LightStateType},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	require.Len(t, responses, 1)

	state, ok := responses[0].Payload.(*packets.LightState)
	require.True(t, ok)
	assert.Equal(t, uint16(65535), state.Color.Kelvin, "kelvin far outside the product range")
	assert.NotContains(t, []uint16{0, 65535}, state.Power, "power outside the legal set")

	data, err := state.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, state.Size(), "length stays correct")
}

func TestFirmwareVersionOverride(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d530000e") })

	responses, _ := d.ProcessPacket(reqHeader(d, packets.DeviceGetHostFirmwareType, true), nil)
	fw := responses[0].Payload.(*packets.DeviceStateHostFirmware)
	assert.Equal(t, DefaultFirmwareMajor, fw.VersionMajor)
	assert.Equal(t, DefaultFirmwareMinor, fw.VersionMinor)

	withDeviceScenario(t, d, &scenarios.Config{
		FirmwareVersion: &scenarios.FirmwareVersion{Major: 2, Minor: 80},
	})

	responses, _ = d.ProcessPacket(reqHeader(d, packets.DeviceGetHostFirmwareType, true), nil)
	fw = responses[0].Payload.(*packets.DeviceStateHostFirmware)
	assert.Equal(t, uint16(2), fw.VersionMajor)
	assert.Equal(t, uint16(80), fw.VersionMinor)

	responses, _ = d.ProcessPacket(reqHeader(d, packets.DeviceGetWifiFirmwareType, true), nil)
	wifi := responses[0].Payload.(*packets.DeviceStateWifiFirmware)
	assert.Equal(t, uint16(2), wifi.VersionMajor)
}

func TestResponseDelayHintAttached(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d530000f") })
	withDeviceScenario(t, d, &scenarios.Config{
		ResponseDelays: map[uint16]float64{packets.LightStateType: 0.5},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	require.Len(t, responses, 1)
	assert.Equal(t, int64(500), responses[0].Delay.Milliseconds())

	responses, _ = d.ProcessPacket(reqHeader(d, packets.DeviceGetLabelType, true), nil)
	assert.Zero(t, responses[0].Delay, "undelayed types default to zero")
}

func TestScenarioCacheInvalidation(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300010") })
	m := withDeviceScenario(t, d, &scenarios.Config{
		ResponseDelays: map[uint16]float64{packets.LightStateType: 0.5},
	})

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	require.Equal(t, int64(500), responses[0].Delay.Milliseconds())

	// Mutating the hierarchy re-resolves on the next packet.
	m.Set(scenarios.ScopeDevice, d.Serial().String(), &scenarios.Config{
		ResponseDelays: map[uint16]float64{packets.LightStateType: 0.1},
	})
	d.InvalidateScenarioCache()

	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	assert.Equal(t, int64(100), responses[0].Delay.Milliseconds())
}

func TestLocationChangeRescopesScenario(t *testing.T) {
	d := mustDevice(t, func() (*Device, error) { return NewColorLight("d073d5300011") })
	m := scenarios.NewManager()
	m.Set(scenarios.ScopeLocation, "Lab", &scenarios.Config{
		ResponseDelays: map[uint16]float64{packets.LightStateType: 0.5},
	})
	d.SetScenarioManager(m)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	assert.Zero(t, responses[0].Delay, "device starts outside the Lab location")

	move := &packets.DeviceSetLocation{
		Location:  [16]byte{1},
		Label:     packets.NewLabel("Lab"),
		UpdatedAt: 1,
	}
	d.ProcessPacket(reqHeader(d, packets.DeviceSetLocationType, false), move)

	responses, _ = d.ProcessPacket(reqHeader(d, packets.LightGetType, true), nil)
	assert.Equal(t, int64(500), responses[0].Delay.Milliseconds(),
		"location change invalidates the cached scenario")
}
