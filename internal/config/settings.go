package config

// Settings is the fully merged runtime configuration: defaults, overlaid
// by the config file, overlaid by the CLI flags the user actually set.
type Settings struct {
	Bind    string
	Port    int
	Verbose bool

	Persistent          bool
	PersistentScenarios bool

	API         bool
	APIHost     string
	APIPort     int
	APIActivity bool

	Products         []uint32
	Color            int
	ColorTemperature int
	Infrared         int
	Hev              int
	Multizone        int
	Tile             int
	Switch           int

	MultizoneZones    int
	MultizoneExtended bool

	TileCount  int
	TileWidth  int
	TileHeight int

	SerialPrefix string
	SerialStart  int

	Devices   []DeviceDefinition
	Scenarios *ScenariosConfig
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Bind:              "127.0.0.1",
		Port:              56700,
		APIHost:           "127.0.0.1",
		APIPort:           8080,
		APIActivity:       true,
		MultizoneExtended: true,
		SerialPrefix:      "d073d5",
		SerialStart:       1,
	}
}

// ApplyFile overlays the set fields of a config file onto the settings.
func (s *Settings) ApplyFile(c *Config) {
	if c == nil {
		return
	}
	setIf(&s.Bind, c.Bind)
	setIf(&s.Port, c.Port)
	setIf(&s.Verbose, c.Verbose)
	setIf(&s.Persistent, c.Persistent)
	setIf(&s.PersistentScenarios, c.PersistentScenarios)
	setIf(&s.API, c.API)
	setIf(&s.APIHost, c.APIHost)
	setIf(&s.APIPort, c.APIPort)
	setIf(&s.APIActivity, c.APIActivity)
	if c.Products != nil {
		s.Products = c.Products
	}
	setIf(&s.Color, c.Color)
	setIf(&s.ColorTemperature, c.ColorTemperature)
	setIf(&s.Infrared, c.Infrared)
	setIf(&s.Hev, c.Hev)
	setIf(&s.Multizone, c.Multizone)
	setIf(&s.Tile, c.Tile)
	setIf(&s.Switch, c.Switch)
	setIf(&s.MultizoneZones, c.MultizoneZones)
	setIf(&s.MultizoneExtended, c.MultizoneExtended)
	setIf(&s.TileCount, c.TileCount)
	setIf(&s.TileWidth, c.TileWidth)
	setIf(&s.TileHeight, c.TileHeight)
	setIf(&s.SerialPrefix, c.SerialPrefix)
	setIf(&s.SerialStart, c.SerialStart)
	if c.Devices != nil {
		s.Devices = c.Devices
	}
	if c.Scenarios != nil {
		s.Scenarios = c.Scenarios
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
