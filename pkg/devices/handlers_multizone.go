package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

func init() {
	registerHandler(packets.MultiZoneSetColorZonesType, CapMultizone, handleSetColorZones)
	registerHandler(packets.MultiZoneGetColorZonesType, CapMultizone, handleGetColorZones)
	registerHandler(packets.MultiZoneSetExtendedColorZonesType, CapExtendedMultizone, handleSetExtendedColorZones)
	registerHandler(packets.MultiZoneGetExtendedColorZonesType, CapExtendedMultizone, handleGetExtendedColorZones)
}

// stateMultiZonePackets covers the inclusive zone range [start, end] with
// 8-zone StateMultiZone packets. Packet i carries index start+8i and the
// device zone count.
func stateMultiZonePackets(s *State, start, end int) []packets.Payload {
	if start < 0 {
		start = 0
	}
	if end >= s.ZoneCount {
		end = s.ZoneCount - 1
	}
	if end < start {
		return nil
	}

	var out []packets.Payload
	for index := start; index <= end; index += packets.MultiZoneStateZones {
		p := &packets.MultiZoneStateMultiZone{
			Count: uint8(s.ZoneCount),
			Index: uint8(index),
		}
		for i := 0; i < packets.MultiZoneStateZones && index+i <= end; i++ {
			p.Colors[i] = s.ZoneColors[index+i]
		}
		out = append(out, p)
	}
	return out
}

// stateExtendedMultiZonePackets covers every zone with 82-zone
// StateExtendedColorZones packets: packet i has index 82i, colors_count
// min(82, Z-82i) and count Z.
func stateExtendedMultiZonePackets(s *State) []packets.Payload {
	var out []packets.Payload
	for index := 0; index < s.ZoneCount; index += packets.MultiZoneExtendedStateZones {
		n := min(packets.MultiZoneExtendedStateZones, s.ZoneCount-index)
		p := &packets.MultiZoneStateExtendedColorZones{
			Count:       uint16(s.ZoneCount),
			Index:       uint16(index),
			ColorsCount: uint8(n),
		}
		copy(p.Colors[:n], s.ZoneColors[index:index+n])
		out = append(out, p)
	}
	return out
}

func handleGetColorZones(s *State, p packets.Payload, _ request) result {
	get, ok := p.(*packets.MultiZoneGetColorZones)
	if !ok {
		return result{}
	}
	return respond(stateMultiZonePackets(s, int(get.StartIndex), int(get.EndIndex))...)
}

// handleSetColorZones fills the inclusive range with a single color,
// clamping out-of-range indices silently the way firmware does.
func handleSetColorZones(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.MultiZoneSetColorZones)
	if !ok {
		return result{}
	}

	start, end := int(set.StartIndex), int(set.EndIndex)
	if end >= s.ZoneCount {
		end = s.ZoneCount - 1
	}
	color := set.Color
	color.Kelvin = s.ClampKelvin(color.Kelvin)
	for i := start; i <= end && i >= 0; i++ {
		s.ZoneColors[i] = color
	}

	if !req.resRequired() {
		return mutate(set.Duration)
	}
	return result{
		payloads:   stateMultiZonePackets(s, int(set.StartIndex), int(set.EndIndex)),
		mutated:    true,
		durationMs: set.Duration,
	}
}

func handleGetExtendedColorZones(s *State, _ packets.Payload, _ request) result {
	return respond(stateExtendedMultiZonePackets(s)...)
}

// handleSetExtendedColorZones applies a contiguous slice of colors
// starting at the payload index.
func handleSetExtendedColorZones(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.MultiZoneSetExtendedColorZones)
	if !ok {
		return result{}
	}

	start := int(set.Index)
	count := int(set.ColorsCount)
	if count > packets.MultiZoneExtendedStateZones {
		count = packets.MultiZoneExtendedStateZones
	}
	for i := 0; i < count; i++ {
		zone := start + i
		if zone < 0 || zone >= s.ZoneCount {
			break
		}
		c := set.Colors[i]
		c.Kelvin = s.ClampKelvin(c.Kelvin)
		s.ZoneColors[zone] = c
	}

	if !req.resRequired() {
		return mutate(set.Duration)
	}
	return result{
		payloads:   stateExtendedMultiZonePackets(s),
		mutated:    true,
		durationMs: set.Duration,
	}
}
