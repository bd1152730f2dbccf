package devices

import (
	"testing"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultizone(t *testing.T, serial string, zones int, extended bool) *Device {
	t.Helper()
	d, err := NewMultizoneLight(serial,
		WithZoneCount(zones),
		WithExtendedMultizone(extended))
	require.NoError(t, err)
	return d
}

func TestExtendedGetColorZonesChunking(t *testing.T) {
	tests := map[string]struct {
		zones int
		want  []struct {
			index       uint16
			colorsCount uint8
		}
	}{
		"120 zones need two packets": {
			zones: 120,
			want: []struct {
				index       uint16
				colorsCount uint8
			}{{0, 82}, {82, 38}},
		},
		"82 zones fit one packet": {
			zones: 82,
			want: []struct {
				index       uint16
				colorsCount uint8
			}{{0, 82}},
		},
		"60 zones fit one packet": {
			zones: 60,
			want: []struct {
				index       uint16
				colorsCount uint8
			}{{0, 60}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := newMultizone(t, "d073d5100001", tt.zones, true)
			responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetExtendedColorZonesType, true), nil)

			ext := responsesOfType(responses, packets.MultiZoneStateExtendedColorZonesType)
			require.Len(t, ext, len(tt.want))
			for i, want := range tt.want {
				p := ext[i].Payload.(*packets.MultiZoneStateExtendedColorZones)
				assert.Equal(t, want.index, p.Index)
				assert.Equal(t, want.colorsCount, p.ColorsCount)
				assert.Equal(t, uint16(tt.zones), p.Count)
			}
		})
	}
}

func TestGetColorZonesChunking(t *testing.T) {
	d := newMultizone(t, "d073d5100002", 120, false)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetColorZonesType, true),
		&packets.MultiZoneGetColorZones{StartIndex: 0, EndIndex: 119})

	mz := responsesOfType(responses, packets.MultiZoneStateMultiZoneType)
	require.Len(t, mz, 15)
	for i, r := range mz {
		p := r.Payload.(*packets.MultiZoneStateMultiZone)
		assert.Equal(t, uint8(8*i), p.Index)
		assert.Equal(t, uint8(120), p.Count)
	}
}

func TestGetColorZonesPartialRange(t *testing.T) {
	d := newMultizone(t, "d073d5100003", 16, false)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetColorZonesType, true),
		&packets.MultiZoneGetColorZones{StartIndex: 4, EndIndex: 9})

	mz := responsesOfType(responses, packets.MultiZoneStateMultiZoneType)
	require.Len(t, mz, 1)
	p := mz[0].Payload.(*packets.MultiZoneStateMultiZone)
	assert.Equal(t, uint8(4), p.Index)
	assert.Equal(t, uint8(16), p.Count)
}

func TestSetColorZonesUpdatesRange(t *testing.T) {
	d := newMultizone(t, "d073d5100004", 16, false)
	red := packets.LightHsbk{Hue: 0, Saturation: 65535, Brightness: 65535, Kelvin: 3500}

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneSetColorZonesType, true),
		&packets.MultiZoneSetColorZones{StartIndex: 2, EndIndex: 5, Color: red})
	require.NotEmpty(t, responses)

	d.Inspect(func(s *State) {
		assert.Equal(t, red, s.ZoneColors[2])
		assert.Equal(t, red, s.ZoneColors[5])
		assert.NotEqual(t, red, s.ZoneColors[1])
		assert.NotEqual(t, red, s.ZoneColors[6])
	})
}

func TestSetExtendedColorZonesAppliesSlice(t *testing.T) {
	d := newMultizone(t, "d073d5100005", 120, true)

	set := &packets.MultiZoneSetExtendedColorZones{
		Index:       10,
		ColorsCount: 3,
		Apply:       packets.MultiZoneApplyApply,
	}
	blue := packets.LightHsbk{Hue: 43690, Saturation: 65535, Brightness: 65535, Kelvin: 3500}
	set.Colors[0], set.Colors[1], set.Colors[2] = blue, blue, blue

	d.ProcessPacket(reqHeader(d, packets.MultiZoneSetExtendedColorZonesType, false), set)

	d.Inspect(func(s *State) {
		assert.Equal(t, blue, s.ZoneColors[10])
		assert.Equal(t, blue, s.ZoneColors[12])
		assert.NotEqual(t, blue, s.ZoneColors[13])
	})
}

func TestZoneArrayMatchesZoneCount(t *testing.T) {
	for _, zones := range []int{1, 8, 82, 120} {
		d := newMultizone(t, "d073d5100006", zones, true)
		d.Inspect(func(s *State) {
			assert.Equal(t, zones, s.ZoneCount)
			assert.Len(t, s.ZoneColors, zones)
		})
	}
}

func TestStandardMultizoneRejectsExtendedWithoutCapability(t *testing.T) {
	d := newMultizone(t, "d073d5100007", 16, false)

	responses, _ := d.ProcessPacket(reqHeader(d, packets.MultiZoneGetExtendedColorZonesType, true), nil)
	assert.Empty(t, responses, "extended request without extended capability is ignored")
}
