package devices

import (
	"testing"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTileChain(t *testing.T, serial string, tiles int) *Device {
	t.Helper()
	d, err := NewTileDevice(serial, WithTileLayout(tiles, 8, 8))
	require.NoError(t, err)
	return d
}

func get64(tileIndex, length uint8) *packets.TileGet64 {
	return &packets.TileGet64{
		TileIndex: tileIndex,
		Length:    length,
		Rect:      packets.TileBufferRect{Width: 8},
	}
}

func TestGet64RespectsLength(t *testing.T) {
	tests := map[string]struct {
		tileIndex uint8
		length    uint8
		wantTiles []uint8
	}{
		"single tile":          {0, 1, []uint8{0}},
		"three tiles":          {0, 3, []uint8{0, 1, 2}},
		"full chain":           {0, 5, []uint8{0, 1, 2, 3, 4}},
		"length exceeds chain": {3, 5, []uint8{3, 4}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := newTileChain(t, "d073d5200001", 5)
			responses, _ := d.ProcessPacket(reqHeader(d, packets.TileGet64Type, true),
				get64(tt.tileIndex, tt.length))

			state64 := responsesOfType(responses, packets.TileState64Type)
			require.Len(t, state64, len(tt.wantTiles))
			for i, want := range tt.wantTiles {
				p := state64[i].Payload.(*packets.TileState64)
				assert.Equal(t, want, p.TileIndex)
			}
		})
	}
}

func TestGet64BeyondChainIsSilent(t *testing.T) {
	d := newTileChain(t, "d073d5200002", 2)
	responses, _ := d.ProcessPacket(reqHeader(d, packets.TileGet64Type, true), get64(5, 1))
	assert.Empty(t, responses)
}

func TestGetDeviceChain(t *testing.T) {
	d := newTileChain(t, "d073d5200003", 5)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.TileGetDeviceChainType, true), nil)
	require.Len(t, responses, 1)

	chain := responses[0].Payload.(*packets.TileStateDeviceChain)
	assert.Equal(t, uint8(5), chain.TileDevicesCount)
	for i := 0; i < 5; i++ {
		assert.Equal(t, uint8(8), chain.TileDevices[i].Width)
		assert.Equal(t, uint8(8), chain.TileDevices[i].Height)
		assert.Equal(t, uint32(55), chain.TileDevices[i].DeviceVersionProduct)
	}
}

func TestSet64WritesRect(t *testing.T) {
	d := newTileChain(t, "d073d5200004", 2)
	green := packets.LightHsbk{Hue: 21845, Saturation: 65535, Brightness: 65535, Kelvin: 3500}

	set := &packets.TileSet64{
		TileIndex: 1,
		Length:    1,
		Rect:      packets.TileBufferRect{X: 0, Y: 0, Width: 8},
	}
	for i := range set.Colors {
		set.Colors[i] = green
	}

	responses, _ := d.ProcessPacket(reqHeader(d, packets.TileSet64Type, true), set)
	require.Len(t, responses, 1)
	assert.Equal(t, packets.TileState64Type, responses[0].Header.Type)

	d.Inspect(func(s *State) {
		assert.Equal(t, green, s.Tiles[1][0])
		assert.Equal(t, green, s.Tiles[1][63])
		assert.NotEqual(t, green, s.Tiles[0][0], "other tiles untouched")
	})
}

func TestSet64OutOfRangeTileIgnored(t *testing.T) {
	d := newTileChain(t, "d073d5200005", 2)

	set := &packets.TileSet64{TileIndex: 9, Length: 1, Rect: packets.TileBufferRect{Width: 8}}
	responses, _ := d.ProcessPacket(reqHeader(d, packets.TileSet64Type, true), set)
	assert.Empty(t, responses)
}

func TestFramebufferMatchesDeclaredSize(t *testing.T) {
	d, err := NewTileDevice("d073d5200006", WithTileLayout(3, 6, 5))
	require.NoError(t, err)

	d.Inspect(func(s *State) {
		assert.Equal(t, 3, s.TileCount)
		require.Len(t, s.Tiles, 3)
		for _, fb := range s.Tiles {
			assert.Len(t, fb, 6*5)
		}
	})
}
