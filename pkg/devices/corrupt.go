package devices

import (
	"math"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

// corruptFieldValues rewrites a response payload with extreme or
// out-of-range numeric fields while keeping its wire length correct. The
// wire does not enforce semantic ranges, so readers parse the values and
// have to cope.
func corruptFieldValues(p packets.Payload) packets.Payload {
	invalidColor := packets.LightHsbk{
		Hue:        math.MaxUint16,
		Saturation: math.MaxUint16,
		Brightness: math.MaxUint16,
		Kelvin:     math.MaxUint16, // far outside any product range
	}

	switch v := p.(type) {
	case *packets.DeviceStateService:
		v.Service = 0xFF
		v.Port = 0
	case *packets.DeviceStatePower:
		v.Level = 12345 // neither 0 nor 65535
	case *packets.LightStatePower:
		v.Level = 12345
	case *packets.LightState:
		v.Color = invalidColor
		v.Power = 12345
	case *packets.DeviceStateHostFirmware:
		v.VersionMajor = math.MaxUint16
		v.VersionMinor = math.MaxUint16
	case *packets.DeviceStateWifiFirmware:
		v.VersionMajor = math.MaxUint16
		v.VersionMinor = math.MaxUint16
	case *packets.DeviceStateVersion:
		v.Vendor = math.MaxUint32
		v.Product = math.MaxUint32
	case *packets.MultiZoneStateMultiZone:
		v.Count = 0
		v.Index = math.MaxUint8
		for i := range v.Colors {
			v.Colors[i] = invalidColor
		}
	case *packets.MultiZoneStateExtendedColorZones:
		v.Count = 0
		v.Index = math.MaxUint16
		v.ColorsCount = math.MaxUint8 // claims more colors than the packet holds
	case *packets.TileStateDeviceChain:
		for i := range v.TileDevices {
			v.TileDevices[i].Width = 0
			v.TileDevices[i].Height = 0
		}
	case *packets.TileState64:
		v.TileIndex = math.MaxUint8
		v.Width = 0
	case *packets.LightStateInfrared:
		v.Brightness = math.MaxUint16
	case *packets.LightStateHevCycle:
		v.RemainingS = math.MaxUint32
		v.LastPower = 0xFF
	case *packets.RelayStatePower:
		v.Level = 12345
	}
	return p
}
