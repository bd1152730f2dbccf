package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

func init() {
	registerHandler(packets.RelayGetPowerType, CapRelays, handleGetRPower)
	registerHandler(packets.RelaySetPowerType, CapRelays, handleSetRPower)
}

func handleGetRPower(s *State, p packets.Payload, _ request) result {
	get, ok := p.(*packets.RelayGetPower)
	if !ok {
		return result{}
	}
	index := int(get.RelayIndex)
	if index >= len(s.RelayPower) {
		index = len(s.RelayPower) - 1
	}
	return respond(&packets.RelayStatePower{
		RelayIndex: uint8(index),
		Level:      s.RelayPower[index],
	})
}

func handleSetRPower(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.RelaySetPower)
	if !ok {
		return result{}
	}
	index := int(set.RelayIndex)
	if index >= len(s.RelayPower) {
		index = len(s.RelayPower) - 1
	}
	s.RelayPower[index] = ClampPower(set.Level)

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, &packets.RelayStatePower{
		RelayIndex: uint8(index),
		Level:      s.RelayPower[index],
	})
}
