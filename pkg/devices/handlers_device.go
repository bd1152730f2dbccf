package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

func init() {
	registerHandler(packets.DeviceGetServiceType, CapAlways, handleGetService)
	registerHandler(packets.DeviceGetHostInfoType, CapAlways, handleGetHostInfo)
	registerHandler(packets.DeviceGetHostFirmwareType, CapAlways, handleGetHostFirmware)
	registerHandler(packets.DeviceGetWifiInfoType, CapAlways, handleGetWifiInfo)
	registerHandler(packets.DeviceGetWifiFirmwareType, CapAlways, handleGetWifiFirmware)
	registerHandler(packets.DeviceGetPowerType, CapAlways, handleGetPower)
	registerHandler(packets.DeviceSetPowerType, CapAlways, handleSetPower)
	registerHandler(packets.DeviceGetLabelType, CapAlways, handleGetLabel)
	registerHandler(packets.DeviceSetLabelType, CapAlways, handleSetLabel)
	registerHandler(packets.DeviceGetVersionType, CapAlways, handleGetVersion)
	registerHandler(packets.DeviceGetInfoType, CapAlways, handleGetInfo)
	registerHandler(packets.DeviceGetLocationType, CapAlways, handleGetLocation)
	registerHandler(packets.DeviceSetLocationType, CapAlways, handleSetLocation)
	registerHandler(packets.DeviceGetGroupType, CapAlways, handleGetGroup)
	registerHandler(packets.DeviceSetGroupType, CapAlways, handleSetGroup)
	registerHandler(packets.DeviceEchoRequestType, CapAlways, handleEchoRequest)
}

func handleGetService(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateService{Service: packets.ServiceUDP, Port: s.Port})
}

func handleGetHostInfo(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateHostInfo{})
}

func handleGetHostFirmware(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateHostFirmware{
		Build:        s.FirmwareBuild,
		VersionMinor: s.FirmwareMinor,
		VersionMajor: s.FirmwareMajor,
	})
}

func handleGetWifiInfo(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateWifiInfo{})
}

func handleGetWifiFirmware(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateWifiFirmware{
		Build:        s.FirmwareBuild,
		VersionMinor: s.FirmwareMinor,
		VersionMajor: s.FirmwareMajor,
	})
}

func handleGetPower(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStatePower{Level: s.PowerLevel})
}

func handleSetPower(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.DeviceSetPower)
	if !ok {
		return result{}
	}
	s.PowerLevel = ClampPower(set.Level)

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, &packets.DeviceStatePower{Level: s.PowerLevel})
}

func handleGetLabel(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateLabel{Label: packets.NewLabel(s.Label)})
}

func handleSetLabel(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.DeviceSetLabel)
	if !ok {
		return result{}
	}
	s.Label = packets.ParseLabel(set.Label)

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, &packets.DeviceStateLabel{Label: packets.NewLabel(s.Label)})
}

func handleGetVersion(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateVersion{
		Vendor:  s.Product.VendorID,
		Product: s.Product.PID,
	})
}

func handleGetInfo(s *State, _ packets.Payload, req request) result {
	uptime := uint64(req.now.Sub(s.StartedAt).Nanoseconds())
	return respond(&packets.DeviceStateInfo{
		Time:   uint64(req.now.UnixNano()),
		Uptime: uptime,
	})
}

func handleGetLocation(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateLocation{
		Location:  s.LocationID,
		Label:     packets.NewLabel(s.LocationLabel),
		UpdatedAt: s.LocationUpdatedAt,
	})
}

// handleSetLocation applies the update only when it is strictly newer than
// the stored one; stale setters lose but still see the current state.
func handleSetLocation(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.DeviceSetLocation)
	if !ok {
		return result{}
	}

	mutated := false
	if set.UpdatedAt > s.LocationUpdatedAt {
		s.LocationID = set.Location
		s.LocationLabel = packets.ParseLabel(set.Label)
		s.LocationUpdatedAt = set.UpdatedAt
		mutated = true
	}

	state := &packets.DeviceStateLocation{
		Location:  s.LocationID,
		Label:     packets.NewLabel(s.LocationLabel),
		UpdatedAt: s.LocationUpdatedAt,
	}
	if !req.resRequired() {
		return result{mutated: mutated}
	}
	return result{payloads: []packets.Payload{state}, mutated: mutated}
}

func handleGetGroup(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.DeviceStateGroup{
		Group:     s.GroupID,
		Label:     packets.NewLabel(s.GroupLabel),
		UpdatedAt: s.GroupUpdatedAt,
	})
}

func handleSetGroup(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.DeviceSetGroup)
	if !ok {
		return result{}
	}

	mutated := false
	if set.UpdatedAt > s.GroupUpdatedAt {
		s.GroupID = set.Group
		s.GroupLabel = packets.ParseLabel(set.Label)
		s.GroupUpdatedAt = set.UpdatedAt
		mutated = true
	}

	state := &packets.DeviceStateGroup{
		Group:     s.GroupID,
		Label:     packets.NewLabel(s.GroupLabel),
		UpdatedAt: s.GroupUpdatedAt,
	}
	if !req.resRequired() {
		return result{mutated: mutated}
	}
	return result{payloads: []packets.Payload{state}, mutated: mutated}
}

func handleEchoRequest(_ *State, p packets.Payload, _ request) result {
	echo, ok := p.(*packets.DeviceEchoRequest)
	if !ok {
		return result{}
	}
	return respond(&packets.DeviceEchoResponse{Payload: echo.Payload})
}
