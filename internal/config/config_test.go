package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifx-emulator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
bind: 0.0.0.0
port: 56701
verbose: true
api: true
api_port: 9090
color: 2
multizone: 1
multizone_zones: 16
serial_prefix: d073d6
devices:
  - product_id: 97
    serial: d073d5aa0001
    label: Desk Lamp
    power_level: 65535
    color:
      hue: 1000
      saturation: 2000
      brightness: 3000
      kelvin: 3500
    location: Office
    group: Lamps
  - product_id: 38
    zone_count: 24
    zone_colors:
      - [0, 65535, 65535, 3500]
      - hue: 100
        saturation: 200
        brightness: 300
        kelvin: 4000
scenarios:
  global:
    send_unhandled: true
  devices:
    d073d5aa0001:
      drop_packets:
        101: 0.5
      partial_responses: [506]
  types:
    multizone:
      response_delays:
        45: 0.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.ApplyFile(cfg)

	assert.Equal(t, "0.0.0.0", settings.Bind)
	assert.Equal(t, 56701, settings.Port)
	assert.True(t, settings.Verbose)
	assert.True(t, settings.API)
	assert.Equal(t, 9090, settings.APIPort)
	assert.Equal(t, "127.0.0.1", settings.APIHost, "unset fields keep defaults")
	assert.Equal(t, 2, settings.Color)
	assert.Equal(t, 1, settings.Multizone)
	assert.Equal(t, 16, settings.MultizoneZones)
	assert.Equal(t, "d073d6", settings.SerialPrefix)

	require.Len(t, settings.Devices, 2)
	first := settings.Devices[0]
	assert.Equal(t, uint32(97), first.ProductID)
	assert.Equal(t, "d073d5aa0001", first.Serial)
	assert.Equal(t, "Desk Lamp", first.Label)
	require.NotNil(t, first.PowerLevel)
	assert.Equal(t, uint16(65535), *first.PowerLevel)
	require.NotNil(t, first.Color)
	assert.Equal(t, uint16(3500), first.Color.Kelvin)
	assert.Equal(t, "Office", first.Location)

	second := settings.Devices[1]
	assert.Equal(t, 24, second.ZoneCount)
	require.Len(t, second.ZoneColors, 2)
	assert.Equal(t, uint16(65535), second.ZoneColors[0].Saturation, "sequence HSBK form")
	assert.Equal(t, uint16(4000), second.ZoneColors[1].Kelvin, "mapping HSBK form")

	require.NotNil(t, settings.Scenarios)
	require.NotNil(t, settings.Scenarios.Global)
	require.NotNil(t, settings.Scenarios.Global.SendUnhandled)
	assert.True(t, *settings.Scenarios.Global.SendUnhandled)

	device := settings.Scenarios.Devices["d073d5aa0001"]
	require.NotNil(t, device)
	assert.Equal(t, 0.5, device.DropPackets[101])
	assert.Equal(t, []uint16{506}, device.PartialResponses)

	mz := settings.Scenarios.Types["multizone"]
	require.NotNil(t, mz)
	assert.Equal(t, 0.1, mz.ResponseDelays[45])
}

func TestLoadRejectsBadSerial(t *testing.T) {
	path := writeConfig(t, `
devices:
  - product_id: 97
    serial: nothex
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadPowerLevel(t *testing.T) {
	path := writeConfig(t, `
devices:
  - product_id: 97
    power_level: 1234
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadHsbkList(t *testing.T) {
	path := writeConfig(t, `
devices:
  - product_id: 97
    color: [1, 2, 3]
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		path := writeConfig(t, "port: 1\n")
		got, err := ResolvePath(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("missing explicit flag errors", func(t *testing.T) {
		_, err := ResolvePath("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("environment variable", func(t *testing.T) {
		path := writeConfig(t, "port: 1\n")
		t.Setenv(EnvVar, path)
		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		dir := t.TempDir()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { os.Chdir(cwd) })

		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
