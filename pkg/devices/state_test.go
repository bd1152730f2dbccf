package devices

import (
	"testing"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/products"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T, pid uint32) *State {
	t.Helper()
	serial, err := protocol.SerialFromHex("d073d5600001")
	require.NoError(t, err)
	product, err := products.Lookup(pid)
	require.NoError(t, err)
	return NewState(serial, product)
}

func TestTypeNamePicksRichestCapability(t *testing.T) {
	tests := map[string]struct {
		pid  uint32
		want string
	}{
		"switch before anything": {70, "switch"},
		"matrix over color":      {55, "matrix"},
		"multizone over color":   {38, "multizone"},
		"hev over color":         {90, "hev"},
		"infrared over color":    {109, "infrared"},
		"plain color":            {97, "color"},
		"white":                  {51, "white"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, newState(t, tt.pid).TypeName())
		})
	}
}

func TestClampKelvin(t *testing.T) {
	s := newState(t, 97) // 1500-9000
	assert.Equal(t, uint16(1500), s.ClampKelvin(100))
	assert.Equal(t, uint16(9000), s.ClampKelvin(65535))
	assert.Equal(t, uint16(3500), s.ClampKelvin(3500))

	sw := newState(t, 70) // switches declare no range
	assert.Equal(t, uint16(4242), sw.ClampKelvin(4242))
}

func TestClampPower(t *testing.T) {
	assert.Equal(t, PowerOff, ClampPower(0))
	assert.Equal(t, PowerOn, ClampPower(1))
	assert.Equal(t, PowerOn, ClampPower(30000))
	assert.Equal(t, PowerOn, ClampPower(65535))
}

func TestSetZoneCountPreservesColors(t *testing.T) {
	s := newState(t, 38)
	s.SetZoneCount(8)

	red := packets.LightHsbk{Hue: 0, Saturation: 65535, Brightness: 65535, Kelvin: 3500}
	s.ZoneColors[0] = red

	s.SetZoneCount(16)
	assert.Equal(t, 16, s.ZoneCount)
	assert.Len(t, s.ZoneColors, 16)
	assert.Equal(t, red, s.ZoneColors[0], "existing zones survive a grow")

	s.SetZoneCount(4)
	assert.Len(t, s.ZoneColors, 4)
	assert.Equal(t, red, s.ZoneColors[0])

	s.SetZoneCount(0)
	assert.Equal(t, 1, s.ZoneCount, "zone count stays at least 1")
}

func TestSetTileLayoutBounds(t *testing.T) {
	s := newState(t, 55)

	s.SetTileLayout(100, 8, 8)
	assert.Equal(t, packets.TileChainMaxDevices, s.TileCount, "chain capped at the protocol maximum")

	s.SetTileLayout(2, 4, 4)
	assert.Equal(t, 2, s.TileCount)
	for _, fb := range s.Tiles {
		assert.Len(t, fb, 16)
	}
}

func TestHevClockHelpers(t *testing.T) {
	s := newState(t, 90)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, s.HevCycleRunning(now))
	assert.Zero(t, s.HevCycleRemaining(now))

	s.HevCycleEndsAt = now.Add(90 * time.Second)
	assert.True(t, s.HevCycleRunning(now))
	assert.Equal(t, uint32(90), s.HevCycleRemaining(now))
	assert.False(t, s.HevCycleRunning(now.Add(2*time.Minute)))
}

func TestNewStateDefaults(t *testing.T) {
	s := newState(t, 38)
	assert.Equal(t, PowerOn, s.PowerLevel)
	assert.Equal(t, DefaultFirmwareMajor, s.FirmwareMajor)
	assert.NotZero(t, s.ZoneCount)
	assert.Len(t, s.ZoneColors, s.ZoneCount)
	assert.Equal(t, s.Product.Name, s.Label)

	hev := newState(t, 90)
	assert.Equal(t, uint32(7200), hev.HevCycleDuration)
	assert.True(t, hev.HevIndication)
	assert.Equal(t, packets.HevResultNone, hev.HevLastResult)

	tile := newState(t, 55)
	assert.Equal(t, 5, tile.TileCount)
	assert.Equal(t, 8, tile.TileWidth)
	assert.Equal(t, 8, tile.TileHeight)
}
