// Package config implements the YAML configuration file of the emulator
// CLI: server options, device definitions and scenario presets, resolved
// from an explicit flag, the environment or the working directory.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable pointing at a config file.
const EnvVar = "LIFX_EMULATOR_CONFIG"

// autoDetectFilenames are probed in the working directory when neither the
// flag nor the environment names a file.
var autoDetectFilenames = []string{"lifx-emulator.yaml", "lifx-emulator.yml"}

var serialPattern = regexp.MustCompile(`^[0-9a-fA-F]{12}$`)

// HsbkConfig is an HSBK color accepting both mapping and [h, s, b, k]
// sequence forms in YAML.
type HsbkConfig struct {
	Hue        uint16 `yaml:"hue" json:"hue"`
	Saturation uint16 `yaml:"saturation" json:"saturation"`
	Brightness uint16 `yaml:"brightness" json:"brightness"`
	Kelvin     uint16 `yaml:"kelvin" json:"kelvin"`
}

func (h *HsbkConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var parts []uint16
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 4 {
			return fmt.Errorf("HSBK list must have exactly 4 elements [hue, saturation, brightness, kelvin]")
		}
		h.Hue, h.Saturation, h.Brightness, h.Kelvin = parts[0], parts[1], parts[2], parts[3]
		return nil
	}

	type plain HsbkConfig
	return value.Decode((*plain)(h))
}

// DeviceDefinition is one device entry in the config file.
type DeviceDefinition struct {
	ProductID          uint32       `yaml:"product_id" json:"product_id"`
	Serial             string       `yaml:"serial,omitempty" json:"serial,omitempty"`
	Label              string       `yaml:"label,omitempty" json:"label,omitempty"`
	PowerLevel         *uint16      `yaml:"power_level,omitempty" json:"power_level,omitempty"`
	Color              *HsbkConfig  `yaml:"color,omitempty" json:"color,omitempty"`
	Location           string       `yaml:"location,omitempty" json:"location,omitempty"`
	Group              string       `yaml:"group,omitempty" json:"group,omitempty"`
	ZoneCount          int          `yaml:"zone_count,omitempty" json:"zone_count,omitempty"`
	ZoneColors         []HsbkConfig `yaml:"zone_colors,omitempty" json:"zone_colors,omitempty"`
	InfraredBrightness *uint16      `yaml:"infrared_brightness,omitempty" json:"infrared_brightness,omitempty"`
	HevCycleDuration   *uint32      `yaml:"hev_cycle_duration,omitempty" json:"hev_cycle_duration,omitempty"`
	HevIndication      *bool        `yaml:"hev_indication,omitempty" json:"hev_indication,omitempty"`
	TileCount          int          `yaml:"tile_count,omitempty" json:"tile_count,omitempty"`
	TileWidth          int          `yaml:"tile_width,omitempty" json:"tile_width,omitempty"`
	TileHeight         int          `yaml:"tile_height,omitempty" json:"tile_height,omitempty"`
}

// Validate checks the fields a bad config file gets wrong in practice.
func (d *DeviceDefinition) Validate() error {
	if d.Serial != "" && !serialPattern.MatchString(d.Serial) {
		return errors.NotValidf("serial %q (must be exactly 12 hex characters)", d.Serial)
	}
	if d.PowerLevel != nil && *d.PowerLevel != devices.PowerOff && *d.PowerLevel != devices.PowerOn {
		return errors.NotValidf("power_level %d (must be 0 or 65535)", *d.PowerLevel)
	}
	return nil
}

// ScenariosConfig holds scenario presets for every scope level.
type ScenariosConfig struct {
	Global    *scenarios.Config            `yaml:"global,omitempty" json:"global,omitempty"`
	Devices   map[string]*scenarios.Config `yaml:"devices,omitempty" json:"devices,omitempty"`
	Types     map[string]*scenarios.Config `yaml:"types,omitempty" json:"types,omitempty"`
	Locations map[string]*scenarios.Config `yaml:"locations,omitempty" json:"locations,omitempty"`
	Groups    map[string]*scenarios.Config `yaml:"groups,omitempty" json:"groups,omitempty"`
}

// Config is the file schema. Pointer fields distinguish "absent" from
// zero so CLI flags can override only what the file left unset.
type Config struct {
	Bind    *string `yaml:"bind,omitempty"`
	Port    *int    `yaml:"port,omitempty"`
	Verbose *bool   `yaml:"verbose,omitempty"`

	Persistent          *bool `yaml:"persistent,omitempty"`
	PersistentScenarios *bool `yaml:"persistent_scenarios,omitempty"`

	API         *bool   `yaml:"api,omitempty"`
	APIHost     *string `yaml:"api_host,omitempty"`
	APIPort     *int    `yaml:"api_port,omitempty"`
	APIActivity *bool   `yaml:"api_activity,omitempty"`

	Products         []uint32 `yaml:"products,omitempty"`
	Color            *int     `yaml:"color,omitempty"`
	ColorTemperature *int     `yaml:"color_temperature,omitempty"`
	Infrared         *int     `yaml:"infrared,omitempty"`
	Hev              *int     `yaml:"hev,omitempty"`
	Multizone        *int     `yaml:"multizone,omitempty"`
	Tile             *int     `yaml:"tile,omitempty"`
	Switch           *int     `yaml:"switch,omitempty"`

	MultizoneZones    *int  `yaml:"multizone_zones,omitempty"`
	MultizoneExtended *bool `yaml:"multizone_extended,omitempty"`

	TileCount  *int `yaml:"tile_count,omitempty"`
	TileWidth  *int `yaml:"tile_width,omitempty"`
	TileHeight *int `yaml:"tile_height,omitempty"`

	SerialPrefix *string `yaml:"serial_prefix,omitempty"`
	SerialStart  *int    `yaml:"serial_start,omitempty"`

	Devices   []DeviceDefinition `yaml:"devices,omitempty"`
	Scenarios *ScenariosConfig   `yaml:"scenarios,omitempty"`
}

// ResolvePath resolves the config file path: the explicit flag wins, then
// the environment variable, then auto-detection in the working directory.
// An empty return with nil error means "no config file".
func ResolvePath(flag string) (string, error) {
	if flag != "" {
		if _, err := os.Stat(flag); err != nil {
			return "", fmt.Errorf("config file %s: %w", flag, err)
		}
		return flag, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", fmt.Errorf("config file %s (from %s): %w", env, EnvVar, err)
		}
		return env, nil
	}
	for _, name := range autoDetectFilenames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Load parses and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for i := range cfg.Devices {
		if err := cfg.Devices[i].Validate(); err != nil {
			return nil, fmt.Errorf("config %s: device %d: %w", path, i, err)
		}
	}
	return &cfg, nil
}
