// Package devices implements the emulated devices: their mutable state,
// the per-device packet-processing engine with its capability-gated handler
// table and scenario filters, the device manager and the observer
// interfaces the management collaborator plugs into.
package devices

import (
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/products"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
)

// Power levels a device accepts. Anything else from a client is clamped.
const (
	PowerOff uint16 = 0
	PowerOn  uint16 = 65535
)

// Default firmware version reported when no scenario overrides it.
const (
	DefaultFirmwareMajor uint16 = 3
	DefaultFirmwareMinor uint16 = 70
	defaultFirmwareBuild uint64 = 1604880106000000000
)

// defaultHevCycleDuration is the factory HEV clean cycle length.
const defaultHevCycleDuration uint32 = 7200

// State is the mutable record of a single emulated device. It is owned by
// the device engine: handlers mutate it only inside the engine's
// synchronous phase, and readers outside go through Device which guards it
// with the engine lock.
type State struct {
	// Identity.
	Serial  protocol.Serial
	Product products.ProductInfo
	Label   string

	LocationID        [16]byte
	LocationLabel     string
	LocationUpdatedAt uint64

	GroupID        [16]byte
	GroupLabel     string
	GroupUpdatedAt uint64

	// PowerLevel is always 0 or 65535.
	PowerLevel uint16

	// Color mode, present when the product has color or a color
	// temperature range.
	Color packets.LightHsbk

	// Multizone mode.
	ZoneCount  int
	ZoneColors []packets.LightHsbk

	// Matrix mode. Each tile owns a flat framebuffer of TileWidth ×
	// TileHeight colors indexed by y*TileWidth + x.
	TileCount  int
	TileWidth  int
	TileHeight int
	Tiles      [][]packets.LightHsbk

	// Infrared mode.
	InfraredBrightness uint16

	// Relay mode: one power level per relay, always 0 or 65535.
	RelayPower [4]uint16

	// HEV mode. A cycle runs while the clock is before HevCycleEndsAt;
	// the running flag is computed on demand, never ticked.
	HevCycleDuration uint32
	HevIndication    bool
	HevCycleEndsAt   time.Time
	HevCycleTotal    uint32
	HevLastPower     uint16
	HevLastResult    uint8

	// Firmware version, immutable unless overridden by scenario.
	FirmwareMajor uint16
	FirmwareMinor uint16
	FirmwareBuild uint64

	// Port is the UDP port the owning server listens on; rewritten at
	// registration.
	Port uint32

	// StartedAt anchors the uptime reported by StateInfo.
	StartedAt time.Time
}

// NewState returns the default state for a product.
func NewState(serial protocol.Serial, product products.ProductInfo) *State {
	s := &State{
		Serial:        serial,
		Product:       product,
		Label:         product.Name,
		PowerLevel:    PowerOn,
		FirmwareMajor: DefaultFirmwareMajor,
		FirmwareMinor: DefaultFirmwareMinor,
		FirmwareBuild: defaultFirmwareBuild,
		Port:          56700,
		StartedAt:     time.Now(),
	}

	if s.HasColorState() {
		s.Color = packets.LightHsbk{Hue: 0, Saturation: 0, Brightness: 65535, Kelvin: s.ClampKelvin(3500)}
	}
	if product.Features.Multizone {
		s.SetZoneCount(max(product.DefaultZoneCount, 1))
	}
	if product.Features.Matrix {
		s.SetTileLayout(max(product.DefaultTileCount, 1), max(product.DefaultTileWidth, 1), max(product.DefaultTileHeight, 1))
	}
	if product.Features.Hev {
		s.HevCycleDuration = defaultHevCycleDuration
		s.HevIndication = true
		s.HevLastResult = packets.HevResultNone
	}

	return s
}

// HasColorState reports whether the device carries a single HSBK color,
// which holds for color products and color-temperature-only lights alike.
func (s *State) HasColorState() bool {
	return !s.Product.Features.Relays
}

// TypeName derives the scenario type key of the device: switches resolve
// to "switch", lights to their richest capability, plain lights to "white".
func (s *State) TypeName() string {
	f := s.Product.Features
	switch {
	case f.Relays:
		return "switch"
	case f.Matrix:
		return "matrix"
	case f.Multizone:
		return "multizone"
	case f.Hev:
		return "hev"
	case f.Infrared:
		return "infrared"
	case f.Color:
		return "color"
	}
	return "white"
}

// ClampKelvin clamps a requested color temperature to the product range.
func (s *State) ClampKelvin(k uint16) uint16 {
	if s.Product.MaxKelvin == 0 {
		return k
	}
	if k < s.Product.MinKelvin {
		return s.Product.MinKelvin
	}
	if k > s.Product.MaxKelvin {
		return s.Product.MaxKelvin
	}
	return k
}

// ClampPower forces a client-supplied power level onto {0, 65535}.
func ClampPower(level uint16) uint16 {
	if level == PowerOff {
		return PowerOff
	}
	return PowerOn
}

// SetZoneCount resizes the zone array, preserving existing colors.
// The zone array length always equals the declared zone count.
func (s *State) SetZoneCount(count int) {
	if count < 1 {
		count = 1
	}
	zones := make([]packets.LightHsbk, count)
	copy(zones, s.ZoneColors)
	def := packets.LightHsbk{Brightness: 65535, Kelvin: s.ClampKelvin(3500)}
	for i := len(s.ZoneColors); i < count; i++ {
		zones[i] = def
	}
	s.ZoneCount = count
	s.ZoneColors = zones
}

// SetTileLayout resizes the chain, allocating a width×height framebuffer
// per tile.
func (s *State) SetTileLayout(count, width, height int) {
	if count < 1 {
		count = 1
	}
	if count > packets.TileChainMaxDevices {
		count = packets.TileChainMaxDevices
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	s.TileCount = count
	s.TileWidth = width
	s.TileHeight = height
	s.Tiles = make([][]packets.LightHsbk, count)
	def := packets.LightHsbk{Brightness: 65535, Kelvin: s.ClampKelvin(3500)}
	for i := range s.Tiles {
		fb := make([]packets.LightHsbk, width*height)
		for j := range fb {
			fb[j] = def
		}
		s.Tiles[i] = fb
	}
}

// HevCycleRemaining returns the seconds left in the running clean cycle,
// or 0 when no cycle is running.
func (s *State) HevCycleRemaining(now time.Time) uint32 {
	if now.After(s.HevCycleEndsAt) {
		return 0
	}
	return uint32(s.HevCycleEndsAt.Sub(now) / time.Second)
}

// HevCycleRunning reports whether a clean cycle is in progress.
func (s *State) HevCycleRunning(now time.Time) bool {
	return now.Before(s.HevCycleEndsAt)
}
