package server

import (
	"testing"

	lifxpackets "github.com/alessio-palumbo/lifxprotocol-go/gen/protocol/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djelibeybi/lifx-emulator/internal/testutil"
	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
)

// clientDatagram frames a lifxprotocol-go payload — the packet library real
// Go clients use — with an emulator header, exactly the bytes such a client
// puts on the wire.
func clientDatagram(t *testing.T, payload lifxpackets.Payload, target [8]byte, ackRequired bool) []byte {
	t.Helper()

	payloadBytes, err := payload.MarshalBinary()
	require.NoError(t, err)

	h := protocol.NewHeader(payload.PayloadType())
	h.Size = uint16(protocol.HeaderSize + len(payloadBytes))
	h.Source = 12345
	h.Sequence = 9
	h.SetTarget(target)
	h.SetResponseRequired(true)
	h.SetAckRequired(ackRequired)

	headerBytes, err := h.MarshalBinary()
	require.NoError(t, err)
	return append(headerBytes, payloadBytes...)
}

func TestClientLibraryDiscovery(t *testing.T) {
	srv := startServer(t)
	addDevice(t, srv, func() (*devices.Device, error) { return devices.NewColorLight("d073d5000001") })
	addDevice(t, srv, func() (*devices.Device, error) { return devices.NewSwitch("d073d5000002") })

	client := testutil.NewClient(t, srv.Port())
	client.SendRaw(clientDatagram(t, &lifxpackets.DeviceGetService{}, protocol.TargetBroadcast, false))

	responses := client.ReceiveAll(recvTimeout)
	require.Len(t, responses, 2, "both devices answer a client-library discovery broadcast")

	for _, resp := range responses {
		state := resp.Payload.(*packets.DeviceStateService)
		assert.Equal(t, packets.ServiceUDP, state.Service)
		assert.Equal(t, uint32(srv.Port()), state.Port)

		// The emulator's response payload parses with the client library's
		// own codec too.
		respPayload, err := resp.Payload.MarshalBinary()
		require.NoError(t, err)
		theirPayload := lifxpackets.Payloads[resp.Header.Type]()
		require.NoError(t, theirPayload.UnmarshalBinary(respPayload))
	}
}

func TestClientLibrarySetPower(t *testing.T) {
	srv := startServer(t)
	d := addDevice(t, srv, func() (*devices.Device, error) { return devices.NewColorLight("d073d5000001") })

	client := testutil.NewClient(t, srv.Port())
	client.SendRaw(clientDatagram(t, &lifxpackets.DeviceSetPower{Level: 0}, d.Serial().Target(), true))

	responses := client.ReceiveAll(recvTimeout)
	require.Len(t, responses, 2)
	assert.Equal(t, packets.DeviceAcknowledgementType, responses[0].Header.Type)
	assert.Equal(t, uint8(9), responses[0].Header.Sequence)

	state := responses[1].Payload.(*packets.DeviceStatePower)
	assert.Equal(t, devices.PowerOff, state.Level)

	d.Inspect(func(s *devices.State) {
		assert.Equal(t, devices.PowerOff, s.PowerLevel)
	})
}

func TestClientLibraryLightGet(t *testing.T) {
	srv := startServer(t)
	d := addDevice(t, srv, func() (*devices.Device, error) { return devices.NewColorLight("d073d5000001") })

	client := testutil.NewClient(t, srv.Port())
	client.SendRaw(clientDatagram(t, &lifxpackets.LightGet{}, d.Serial().Target(), false))

	resp := client.Receive(recvTimeout)
	require.Equal(t, packets.LightStateType, resp.Header.Type)

	state := resp.Payload.(*packets.LightState)
	assert.Equal(t, devices.PowerOn, state.Power)
	assert.NotEmpty(t, packets.ParseLabel(state.Label))
}

func TestClientLibraryStateQueries(t *testing.T) {
	srv := startServer(t)
	d := addDevice(t, srv, func() (*devices.Device, error) { return devices.NewColorLight("d073d5000001") })

	client := testutil.NewClient(t, srv.Port())

	// The state refresh sequence the lifxlan-go controller issues on every
	// new device session.
	queries := []lifxpackets.Payload{
		&lifxpackets.DeviceGetLabel{},
		&lifxpackets.DeviceGetVersion{},
		&lifxpackets.LightGet{},
		&lifxpackets.DeviceGetHostFirmware{},
		&lifxpackets.DeviceGetLocation{},
		&lifxpackets.DeviceGetGroup{},
	}
	want := []uint16{
		packets.DeviceStateLabelType,
		packets.DeviceStateVersionType,
		packets.LightStateType,
		packets.DeviceStateHostFirmwareType,
		packets.DeviceStateLocationType,
		packets.DeviceStateGroupType,
	}

	for i, q := range queries {
		client.SendRaw(clientDatagram(t, q, d.Serial().Target(), false))
		resp := client.Receive(recvTimeout)
		assert.Equal(t, want[i], resp.Header.Type)
	}
}
