package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/products"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
	"github.com/juju/errors"
)

// Option overrides a factory default on the device state.
type Option func(*State)

// WithZoneCount sets the zone count of a multizone device.
func WithZoneCount(count int) Option {
	return func(s *State) {
		if s.Product.Features.Multizone && count > 0 {
			s.SetZoneCount(count)
		}
	}
}

// WithExtendedMultizone toggles the extended-multizone firmware capability.
func WithExtendedMultizone(enabled bool) Option {
	return func(s *State) {
		if s.Product.Features.Multizone {
			s.Product.Features.ExtendedMultizone = enabled
		}
	}
}

// WithTileLayout sets the chain length and per-tile dimensions of a matrix
// device. Zero values keep the product defaults.
func WithTileLayout(count, width, height int) Option {
	return func(s *State) {
		if !s.Product.Features.Matrix {
			return
		}
		if count <= 0 {
			count = s.TileCount
		}
		if width <= 0 {
			width = s.TileWidth
		}
		if height <= 0 {
			height = s.TileHeight
		}
		s.SetTileLayout(count, width, height)
	}
}

// WithLabel sets the device label.
func WithLabel(label string) Option {
	return func(s *State) {
		if label != "" {
			s.Label = label
		}
	}
}

// NewDevice builds a device for a product id. The product determines the
// capability set and the default mode payloads; unknown ids and malformed
// serials fail with typed errors.
func NewDevice(productID uint32, serialHex string, opts ...Option) (*Device, error) {
	serial, err := protocol.SerialFromHex(serialHex)
	if err != nil {
		return nil, errors.NotValidf("serial %q", serialHex)
	}

	product, err := products.Lookup(productID)
	if err != nil {
		return nil, err
	}

	state := NewState(serial, product)
	for _, opt := range opts {
		opt(state)
	}
	return New(state), nil
}

// NewColorLight builds a full-color light.
func NewColorLight(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultColorPID, serialHex, opts...)
}

// NewColorTemperatureLight builds a white-spectrum light.
func NewColorTemperatureLight(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultColorTempPID, serialHex, opts...)
}

// NewInfraredLight builds a night-vision light.
func NewInfraredLight(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultInfraredPID, serialHex, opts...)
}

// NewHevLight builds a HEV clean light.
func NewHevLight(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultHevPID, serialHex, opts...)
}

// NewMultizoneLight builds a strip. Extended multizone defaults to the
// product capability; disable it for legacy Z-style strips.
func NewMultizoneLight(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultMultizonePID, serialHex, opts...)
}

// NewTileDevice builds a tile chain.
func NewTileDevice(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultTilePID, serialHex, opts...)
}

// NewSwitch builds a relay switch.
func NewSwitch(serialHex string, opts ...Option) (*Device, error) {
	return NewDevice(products.DefaultSwitchPID, serialHex, opts...)
}
