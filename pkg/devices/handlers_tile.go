package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

func init() {
	registerHandler(packets.TileGetDeviceChainType, CapMatrix, handleGetDeviceChain)
	registerHandler(packets.TileSetUserPositionType, CapMatrix, handleSetUserPosition)
	registerHandler(packets.TileGet64Type, CapMatrix, handleGet64)
	registerHandler(packets.TileSet64Type, CapMatrix, handleSet64)
}

func handleGetDeviceChain(s *State, _ packets.Payload, _ request) result {
	chain := &packets.TileStateDeviceChain{
		TileDevicesCount: uint8(s.TileCount),
	}
	for i := 0; i < s.TileCount && i < packets.TileChainMaxDevices; i++ {
		chain.TileDevices[i] = packets.TileDevice{
			UserX:                float32(i),
			Width:                uint8(s.TileWidth),
			Height:               uint8(s.TileHeight),
			DeviceVersionVendor:  s.Product.VendorID,
			DeviceVersionProduct: s.Product.PID,
			FirmwareBuild:        s.FirmwareBuild,
			FirmwareVersionMinor: s.FirmwareMinor,
			FirmwareVersionMajor: s.FirmwareMajor,
		}
	}
	return respond(chain)
}

func handleSetUserPosition(s *State, p packets.Payload, _ request) result {
	_, ok := p.(*packets.TileSetUserPosition)
	if !ok {
		return result{}
	}
	// Positions are accepted and discarded: the emulator keeps a linear
	// chain layout.
	return result{mutated: true}
}

// state64Packet copies the rect of one tile's framebuffer into a State64.
func state64Packet(s *State, tileIndex int, rect packets.TileBufferRect) *packets.TileState64 {
	p := &packets.TileState64{
		TileIndex: uint8(tileIndex),
		X:         rect.X,
		Y:         rect.Y,
		Width:     rect.Width,
	}

	width := int(rect.Width)
	if width == 0 || width > s.TileWidth {
		width = s.TileWidth
		p.Width = uint8(width)
	}

	fb := s.Tiles[tileIndex]
	i := 0
	for y := int(rect.Y); y < s.TileHeight && i < packets.TileFrameZones; y++ {
		for x := int(rect.X); x < int(rect.X)+width && i < packets.TileFrameZones; x++ {
			if x < s.TileWidth {
				p.Colors[i] = fb[y*s.TileWidth+x]
			}
			i++
		}
	}
	return p
}

// handleGet64 answers with min(length, tile_count - tile_index) State64
// packets, one per tile starting at tile_index.
func handleGet64(s *State, p packets.Payload, _ request) result {
	get, ok := p.(*packets.TileGet64)
	if !ok {
		return result{}
	}

	start := int(get.TileIndex)
	if start >= s.TileCount {
		return result{}
	}
	n := min(int(get.Length), s.TileCount-start)

	var payloads []packets.Payload
	for i := 0; i < n; i++ {
		payloads = append(payloads, state64Packet(s, start+i, get.Rect))
	}
	return respond(payloads...)
}

// handleSet64 writes the rect of one tile's framebuffer, clamping the rect
// to the tile bounds silently.
func handleSet64(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.TileSet64)
	if !ok {
		return result{}
	}

	tileIndex := int(set.TileIndex)
	if tileIndex < 0 || tileIndex >= s.TileCount {
		return result{}
	}

	width := int(set.Rect.Width)
	if width == 0 || width > s.TileWidth {
		width = s.TileWidth
	}

	fb := s.Tiles[tileIndex]
	i := 0
	for y := int(set.Rect.Y); y < s.TileHeight && i < packets.TileFrameZones; y++ {
		for x := int(set.Rect.X); x < int(set.Rect.X)+width && i < packets.TileFrameZones; x++ {
			if x < s.TileWidth {
				c := set.Colors[i]
				c.Kelvin = s.ClampKelvin(c.Kelvin)
				fb[y*s.TileWidth+x] = c
			}
			i++
		}
	}

	if !req.resRequired() {
		return mutate(set.Duration)
	}
	return mutate(set.Duration, state64Packet(s, tileIndex, set.Rect))
}
