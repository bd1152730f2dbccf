// Package products is the static registry of LIFX product capabilities the
// emulator can impersonate. The table is read-only after program start;
// every device derives its capability set from it at construction.
package products

import (
	"fmt"
	"sort"

	"github.com/alessio-palumbo/lifxregistry-go/gen/registry"
	"github.com/juju/errors"
)

// VendorLifx is the vendor id reported by every LIFX product.
const VendorLifx uint32 = 1

// Capabilities is the immutable capability set of a product.
type Capabilities struct {
	Color             bool
	Infrared          bool
	Multizone         bool
	ExtendedMultizone bool
	Matrix            bool
	Chain             bool
	Hev               bool
	Relays            bool
	Buttons           bool
}

// ProductInfo describes one product id: its capability set, the supported
// color-temperature range and the structural defaults factories use.
type ProductInfo struct {
	PID      uint32
	Name     string
	VendorID uint32
	Features Capabilities

	// Supported color temperature range in kelvin.
	MinKelvin uint16
	MaxKelvin uint16

	// Structural defaults applied when a definition does not override them.
	DefaultZoneCount  int
	DefaultTileCount  int
	DefaultTileWidth  int
	DefaultTileHeight int
}

// Default product ids used by the device factories.
const (
	DefaultColorPID     uint32 = 97  // LIFX A19
	DefaultColorTempPID uint32 = 50  // LIFX Mini Day and Dusk
	DefaultInfraredPID  uint32 = 109 // LIFX A19 Night Vision
	DefaultHevPID       uint32 = 90  // LIFX Clean
	DefaultMultizonePID uint32 = 38  // LIFX Beam
	DefaultStripPID     uint32 = 32  // LIFX Z 2
	DefaultTilePID      uint32 = 55  // LIFX Tile
	DefaultCandlePID    uint32 = 57  // LIFX Candle
	DefaultSwitchPID    uint32 = 70  // LIFX Switch
)

var table = map[uint32]ProductInfo{
	1:   {PID: 1, Name: "LIFX Original 1000", Features: Capabilities{Color: true}, MinKelvin: 2500, MaxKelvin: 9000},
	22:  {PID: 22, Name: "LIFX Color 1000", Features: Capabilities{Color: true}, MinKelvin: 2500, MaxKelvin: 9000},
	27:  {PID: 27, Name: "LIFX A19", Features: Capabilities{Color: true}, MinKelvin: 2500, MaxKelvin: 9000},
	29:  {PID: 29, Name: "LIFX+ A19", Features: Capabilities{Color: true, Infrared: true}, MinKelvin: 2500, MaxKelvin: 9000},
	31:  {PID: 31, Name: "LIFX Z", Features: Capabilities{Color: true, Multizone: true}, MinKelvin: 2500, MaxKelvin: 9000, DefaultZoneCount: 8},
	32:  {PID: 32, Name: "LIFX Z 2", Features: Capabilities{Color: true, Multizone: true}, MinKelvin: 2500, MaxKelvin: 9000, DefaultZoneCount: 8},
	38:  {PID: 38, Name: "LIFX Beam", Features: Capabilities{Color: true, Multizone: true, ExtendedMultizone: true}, MinKelvin: 2500, MaxKelvin: 9000, DefaultZoneCount: 16},
	49:  {PID: 49, Name: "LIFX Mini Color", Features: Capabilities{Color: true}, MinKelvin: 1500, MaxKelvin: 9000},
	50:  {PID: 50, Name: "LIFX Mini Day and Dusk", Features: Capabilities{}, MinKelvin: 1500, MaxKelvin: 4000},
	51:  {PID: 51, Name: "LIFX Mini White", Features: Capabilities{}, MinKelvin: 2700, MaxKelvin: 2700},
	55:  {PID: 55, Name: "LIFX Tile", Features: Capabilities{Color: true, Matrix: true, Chain: true}, MinKelvin: 2500, MaxKelvin: 9000, DefaultTileCount: 5, DefaultTileWidth: 8, DefaultTileHeight: 8},
	57:  {PID: 57, Name: "LIFX Candle", Features: Capabilities{Color: true, Matrix: true}, MinKelvin: 1500, MaxKelvin: 9000, DefaultTileCount: 1, DefaultTileWidth: 5, DefaultTileHeight: 6},
	70:  {PID: 70, Name: "LIFX Switch", Features: Capabilities{Relays: true, Buttons: true}},
	71:  {PID: 71, Name: "LIFX Switch", Features: Capabilities{Relays: true, Buttons: true}},
	81:  {PID: 81, Name: "LIFX Candle White to Warm", Features: Capabilities{}, MinKelvin: 2200, MaxKelvin: 6500},
	89:  {PID: 89, Name: "LIFX Switch", Features: Capabilities{Relays: true, Buttons: true}},
	90:  {PID: 90, Name: "LIFX Clean", Features: Capabilities{Color: true, Hev: true}, MinKelvin: 1500, MaxKelvin: 9000},
	97:  {PID: 97, Name: "LIFX A19", Features: Capabilities{Color: true}, MinKelvin: 1500, MaxKelvin: 9000},
	98:  {PID: 98, Name: "LIFX BR30", Features: Capabilities{Color: true}, MinKelvin: 1500, MaxKelvin: 9000},
	109: {PID: 109, Name: "LIFX A19 Night Vision", Features: Capabilities{Color: true, Infrared: true}, MinKelvin: 1500, MaxKelvin: 9000},
	115: {PID: 115, Name: "LIFX Switch", Features: Capabilities{Relays: true, Buttons: true}},
	116: {PID: 116, Name: "LIFX Switch", Features: Capabilities{Relays: true, Buttons: true}},
	117: {PID: 117, Name: "LIFX Z US", Features: Capabilities{Color: true, Multizone: true, ExtendedMultizone: true}, MinKelvin: 1500, MaxKelvin: 9000, DefaultZoneCount: 8},
	119: {PID: 119, Name: "LIFX Beam US", Features: Capabilities{Color: true, Multizone: true, ExtendedMultizone: true}, MinKelvin: 1500, MaxKelvin: 9000, DefaultZoneCount: 16},
	176: {PID: 176, Name: "LIFX Ceiling", Features: Capabilities{Color: true, Matrix: true}, MinKelvin: 1500, MaxKelvin: 9000, DefaultTileCount: 1, DefaultTileWidth: 8, DefaultTileHeight: 8},
}

// Lookup returns the ProductInfo for the given product id.
// Unknown ids fail with a NotFound error.
func Lookup(pid uint32) (ProductInfo, error) {
	p, ok := table[pid]
	if !ok {
		return ProductInfo{}, errors.NotFoundf("product id %d", pid)
	}
	p.VendorID = VendorLifx
	return p, nil
}

// IsUnknownProduct reports whether err is a failed product lookup.
func IsUnknownProduct(err error) bool {
	return errors.IsNotFound(err)
}

// All returns every registered product sorted by product id.
func All() []ProductInfo {
	out := make([]ProductInfo, 0, len(table))
	for _, p := range table {
		p.VendorID = VendorLifx
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// RegistryName returns the canonical registry name for a product id,
// preferring the published LIFX registry over the local table so ids the
// emulator cannot impersonate still display correctly.
func RegistryName(pid uint32) string {
	if p, ok := registry.ProductsByPID[int(pid)]; ok && p.Name != "" {
		return p.Name
	}
	if p, err := Lookup(pid); err == nil {
		return p.Name
	}
	return fmt.Sprintf("Unknown(%d)", pid)
}
