package devices

import (
	"context"
	"encoding/hex"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

// Store is the device persistence hook. The engine invokes it after any
// state mutation; implementations live outside the core and must never
// raise into the engine — errors are logged and swallowed.
type Store interface {
	SaveDeviceState(ctx context.Context, serial string, snap Snapshot) error
	LoadDeviceState(ctx context.Context, serial string) (*Snapshot, error)
	ListDevices(ctx context.Context) ([]string, error)
	DeleteDevice(ctx context.Context, serial string) error
}

// Snapshot is the serializable form of a device's mutable state.
type Snapshot struct {
	Serial  string `json:"serial" yaml:"serial"`
	Product uint32 `json:"product" yaml:"product"`
	Label   string `json:"label" yaml:"label"`

	PowerLevel uint16            `json:"power_level" yaml:"power_level"`
	Color      packets.LightHsbk `json:"color" yaml:"color"`

	LocationID        string `json:"location_id,omitempty" yaml:"location_id,omitempty"`
	LocationLabel     string `json:"location_label,omitempty" yaml:"location_label,omitempty"`
	LocationUpdatedAt uint64 `json:"location_updated_at,omitempty" yaml:"location_updated_at,omitempty"`

	GroupID        string `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	GroupLabel     string `json:"group_label,omitempty" yaml:"group_label,omitempty"`
	GroupUpdatedAt uint64 `json:"group_updated_at,omitempty" yaml:"group_updated_at,omitempty"`

	ZoneCount  int                 `json:"zone_count,omitempty" yaml:"zone_count,omitempty"`
	ZoneColors []packets.LightHsbk `json:"zone_colors,omitempty" yaml:"zone_colors,omitempty"`

	TileCount  int                   `json:"tile_count,omitempty" yaml:"tile_count,omitempty"`
	TileWidth  int                   `json:"tile_width,omitempty" yaml:"tile_width,omitempty"`
	TileHeight int                   `json:"tile_height,omitempty" yaml:"tile_height,omitempty"`
	Tiles      [][]packets.LightHsbk `json:"tiles,omitempty" yaml:"tiles,omitempty"`

	InfraredBrightness uint16 `json:"infrared_brightness,omitempty" yaml:"infrared_brightness,omitempty"`

	RelayPower []uint16 `json:"relay_power,omitempty" yaml:"relay_power,omitempty"`

	HevCycleDuration uint32 `json:"hev_cycle_duration,omitempty" yaml:"hev_cycle_duration,omitempty"`
	HevIndication    bool   `json:"hev_indication,omitempty" yaml:"hev_indication,omitempty"`
}

// SnapshotState returns a serializable copy of the device state.
func (d *Device) SnapshotState() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Device) snapshotLocked() Snapshot {
	s := d.state
	snap := Snapshot{
		Serial:             s.Serial.String(),
		Product:            s.Product.PID,
		Label:              s.Label,
		PowerLevel:         s.PowerLevel,
		Color:              s.Color,
		LocationLabel:      s.LocationLabel,
		LocationUpdatedAt:  s.LocationUpdatedAt,
		GroupLabel:         s.GroupLabel,
		GroupUpdatedAt:     s.GroupUpdatedAt,
		ZoneCount:          s.ZoneCount,
		TileCount:          s.TileCount,
		TileWidth:          s.TileWidth,
		TileHeight:         s.TileHeight,
		InfraredBrightness: s.InfraredBrightness,
		HevCycleDuration:   s.HevCycleDuration,
		HevIndication:      s.HevIndication,
	}
	if s.LocationID != ([16]byte{}) {
		snap.LocationID = hex.EncodeToString(s.LocationID[:])
	}
	if s.GroupID != ([16]byte{}) {
		snap.GroupID = hex.EncodeToString(s.GroupID[:])
	}
	if len(s.ZoneColors) > 0 {
		snap.ZoneColors = append([]packets.LightHsbk(nil), s.ZoneColors...)
	}
	if len(s.Tiles) > 0 {
		snap.Tiles = make([][]packets.LightHsbk, len(s.Tiles))
		for i, fb := range s.Tiles {
			snap.Tiles[i] = append([]packets.LightHsbk(nil), fb...)
		}
	}
	if s.Product.Features.Relays {
		snap.RelayPower = append([]uint16(nil), s.RelayPower[:]...)
	}
	return snap
}

// ApplySnapshot restores the mutable parts of a snapshot onto the device
// state. Structural fields are applied only when they fit the product.
func (d *Device) ApplySnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	if snap.Label != "" {
		s.Label = snap.Label
	}
	s.PowerLevel = ClampPower(snap.PowerLevel)
	if s.HasColorState() {
		s.Color = snap.Color
		s.Color.Kelvin = s.ClampKelvin(snap.Color.Kelvin)
	}
	if id, err := hex.DecodeString(snap.LocationID); err == nil && len(id) == 16 {
		copy(s.LocationID[:], id)
	}
	s.LocationLabel = snap.LocationLabel
	s.LocationUpdatedAt = snap.LocationUpdatedAt
	if id, err := hex.DecodeString(snap.GroupID); err == nil && len(id) == 16 {
		copy(s.GroupID[:], id)
	}
	s.GroupLabel = snap.GroupLabel
	s.GroupUpdatedAt = snap.GroupUpdatedAt

	if s.Product.Features.Multizone && snap.ZoneCount > 0 {
		s.SetZoneCount(snap.ZoneCount)
		copy(s.ZoneColors, snap.ZoneColors)
	}
	if s.Product.Features.Matrix && snap.TileCount > 0 {
		s.SetTileLayout(snap.TileCount, snap.TileWidth, snap.TileHeight)
		for i := range s.Tiles {
			if i < len(snap.Tiles) {
				copy(s.Tiles[i], snap.Tiles[i])
			}
		}
	}
	if s.Product.Features.Infrared {
		s.InfraredBrightness = snap.InfraredBrightness
	}
	if s.Product.Features.Relays {
		copy(s.RelayPower[:], snap.RelayPower)
	}
	if s.Product.Features.Hev && snap.HevCycleDuration > 0 {
		s.HevCycleDuration = snap.HevCycleDuration
		s.HevIndication = snap.HevIndication
	}
}
