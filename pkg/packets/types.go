package packets

import "strings"

// LightHsbk is the wire representation of a color: hue, saturation and
// brightness over the full uint16 range, kelvin within the product's
// supported color-temperature range.
type LightHsbk struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     uint16
}

// Waveform values for SetWaveform and SetWaveformOptional.
const (
	WaveformSaw      uint8 = 0
	WaveformSine     uint8 = 1
	WaveformHalfSine uint8 = 2
	WaveformTriangle uint8 = 3
	WaveformPulse    uint8 = 4
)

// MultiZone apply directives.
const (
	MultiZoneApplyNoApply   uint8 = 0
	MultiZoneApplyApply     uint8 = 1
	MultiZoneApplyApplyOnly uint8 = 2
)

// HEV cycle results for StateLastHevCycleResult.
const (
	HevResultSuccess          uint8 = 0
	HevResultBusy             uint8 = 1
	HevResultInterruptedByLAN uint8 = 3
	HevResultNone             uint8 = 5
)

// TileBufferRect addresses a rectangle within a tile frame buffer.
type TileBufferRect struct {
	FbIndex uint8
	X       uint8
	Y       uint8
	Width   uint8
}

// TileDevice is the chain metadata of a single tile as carried by
// StateDeviceChain.
type TileDevice struct {
	AccelMeasX           int16
	AccelMeasY           int16
	AccelMeasZ           int16
	Reserved6            int16
	UserX                float32
	UserY                float32
	Width                uint8
	Height               uint8
	Reserved7            uint8
	DeviceVersionVendor  uint32
	DeviceVersionProduct uint32
	DeviceVersionVersion uint32
	FirmwareBuild        uint64
	Reserved8            uint64
	FirmwareVersionMinor uint16
	FirmwareVersionMajor uint16
	Reserved9            uint32
}

// NewLabel converts a string into the 32-byte wire form, right-truncated.
func NewLabel(s string) [32]byte {
	var l [32]byte
	copy(l[:], s)
	return l
}

// ParseLabel parses the raw byte label into a string and trims C-style null bytes.
func ParseLabel(label [32]byte) string {
	return strings.Trim(string(label[:]), "\x00")
}
