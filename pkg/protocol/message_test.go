package protocol

import (
	"testing"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageMarshalRoundTrip(t *testing.T) {
	msg := NewMessage(&packets.LightSetColor{
		Color:    packets.LightHsbk{Hue: 10000, Saturation: 65535, Brightness: 50000, Kelvin: 3500},
		Duration: 250,
	})
	msg.SetSource(12345)
	msg.SetSequence(7)

	target, err := SerialFromHex("d073d5000001")
	require.NoError(t, err)
	msg.SetTarget(target.Target())
	assert.False(t, msg.Header.IsTagged())

	data, err := msg.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, HeaderSize+13)

	var got Message
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, msg.Header, got.Header)

	payload, ok := got.Payload.(*packets.LightSetColor)
	require.True(t, ok)
	assert.Equal(t, uint16(10000), payload.Color.Hue)
	assert.Equal(t, uint32(250), payload.Duration)
}

func TestMessageBroadcastTarget(t *testing.T) {
	msg := NewMessage(&packets.DeviceGetService{})
	msg.SetTarget(TargetBroadcast)
	assert.True(t, msg.Header.IsTagged())
}

func TestMessageUnknownPayloadDecodesOpaque(t *testing.T) {
	h := NewHeader(9999)
	h.Size = HeaderSize + 3
	data, err := h.MarshalBinary()
	require.NoError(t, err)
	data = append(data, 0x01, 0x02, 0x03)

	var msg Message
	require.NoError(t, msg.UnmarshalBinary(data))

	opaque, ok := msg.Payload.(*packets.Opaque)
	require.True(t, ok)
	assert.Equal(t, uint16(9999), opaque.PayloadType())
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, opaque.Data)
}

func TestMessageMarshalNilPayload(t *testing.T) {
	var msg Message
	_, err := msg.MarshalBinary()
	assert.Error(t, err)
}
