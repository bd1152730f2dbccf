package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Djelibeybi/lifx-emulator/internal/config"
	"github.com/Djelibeybi/lifx-emulator/internal/storage"
	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/products"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// idNamespace seeds the deterministic location/group ids so the same label
// maps to the same id across restarts.
var idNamespace = uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

// serialGenerator hands out prefix+counter serials, skipping the ones the
// config file assigned explicitly.
type serialGenerator struct {
	prefix   string
	next     int
	explicit map[string]bool
}

func newSerialGenerator(prefix string, start int, defs []config.DeviceDefinition) *serialGenerator {
	explicit := make(map[string]bool)
	for _, def := range defs {
		if def.Serial != "" {
			explicit[strings.ToLower(def.Serial)] = true
		}
	}
	return &serialGenerator{prefix: prefix, next: start, explicit: explicit}
}

func (g *serialGenerator) Next() string {
	for {
		serial := fmt.Sprintf("%s%06x", g.prefix, g.next)
		g.next++
		if !g.explicit[strings.ToLower(serial)] {
			return serial
		}
	}
}

// buildDevices assembles the device fleet: restored from storage when
// persistence is on and nothing else is configured, otherwise from the
// count flags, the --product ids and the config file definitions.
func buildDevices(settings config.Settings, store *storage.FileDeviceStore, logger *log.Logger) ([]*devices.Device, error) {
	serials := newSerialGenerator(settings.SerialPrefix, settings.SerialStart, settings.Devices)

	hasAnyDeviceConfig := len(settings.Products) > 0 || settings.Color > 0 ||
		settings.ColorTemperature > 0 || settings.Infrared > 0 || settings.Hev > 0 ||
		settings.Multizone > 0 || settings.Tile > 0 || settings.Switch > 0 ||
		len(settings.Devices) > 0

	if store != nil && !hasAnyDeviceConfig {
		return restoreDevices(store, logger)
	}

	var fleet []*devices.Device
	add := func(d *devices.Device, err error) error {
		if err != nil {
			return err
		}
		fleet = append(fleet, d)
		return nil
	}

	for _, pid := range settings.Products {
		if err := add(devices.NewDevice(pid, serials.Next())); err != nil {
			return nil, fmt.Errorf("creating device for product %d: %w", pid, err)
		}
	}
	for range settings.Color {
		if err := add(devices.NewColorLight(serials.Next())); err != nil {
			return nil, err
		}
	}
	for range settings.ColorTemperature {
		if err := add(devices.NewColorTemperatureLight(serials.Next())); err != nil {
			return nil, err
		}
	}
	for range settings.Infrared {
		if err := add(devices.NewInfraredLight(serials.Next())); err != nil {
			return nil, err
		}
	}
	for range settings.Hev {
		if err := add(devices.NewHevLight(serials.Next())); err != nil {
			return nil, err
		}
	}
	for range settings.Multizone {
		pid := products.DefaultMultizonePID
		if !settings.MultizoneExtended {
			pid = products.DefaultStripPID
		}
		err := add(devices.NewDevice(pid, serials.Next(),
			devices.WithZoneCount(settings.MultizoneZones),
			devices.WithExtendedMultizone(settings.MultizoneExtended)))
		if err != nil {
			return nil, err
		}
	}
	for range settings.Tile {
		err := add(devices.NewTileDevice(serials.Next(),
			devices.WithTileLayout(settings.TileCount, settings.TileWidth, settings.TileHeight)))
		if err != nil {
			return nil, err
		}
	}
	for range settings.Switch {
		if err := add(devices.NewSwitch(serials.Next())); err != nil {
			return nil, err
		}
	}

	for i := range settings.Devices {
		d, err := deviceFromDefinition(&settings.Devices[i], serials)
		if err != nil {
			return nil, fmt.Errorf("config device %d: %w", i, err)
		}
		fleet = append(fleet, d)
	}

	return fleet, nil
}

func restoreDevices(store *storage.FileDeviceStore, logger *log.Logger) ([]*devices.Device, error) {
	ctx := context.Background()
	serials, err := store.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if len(serials) == 0 {
		logger.Info("Persistent storage enabled but empty. Starting with no devices.")
		return nil, nil
	}

	logger.Infof("Restoring %d device(s) from persistent storage", len(serials))
	var fleet []*devices.Device
	for _, serial := range serials {
		snap, err := store.LoadDeviceState(ctx, serial)
		if err != nil || snap == nil {
			logger.WithError(err).Warnf("Failed to restore device %s", serial)
			continue
		}
		d, err := devices.NewDevice(snap.Product, serial)
		if err != nil {
			logger.WithError(err).Warnf("Failed to restore device %s", serial)
			continue
		}
		d.ApplySnapshot(snap)
		fleet = append(fleet, d)
	}
	return fleet, nil
}

func deviceFromDefinition(def *config.DeviceDefinition, serials *serialGenerator) (*devices.Device, error) {
	serial := def.Serial
	if serial == "" {
		serial = serials.Next()
	}

	opts := []devices.Option{
		devices.WithLabel(def.Label),
		devices.WithZoneCount(def.ZoneCount),
	}
	if def.TileCount > 0 || def.TileWidth > 0 || def.TileHeight > 0 {
		opts = append(opts, devices.WithTileLayout(def.TileCount, def.TileWidth, def.TileHeight))
	}

	d, err := devices.NewDevice(def.ProductID, serial, opts...)
	if err != nil {
		return nil, err
	}

	d.Inspect(func(s *devices.State) {
		if def.PowerLevel != nil {
			s.PowerLevel = devices.ClampPower(*def.PowerLevel)
		}
		if def.Color != nil && s.HasColorState() {
			s.Color = packets.LightHsbk(*def.Color)
			s.Color.Kelvin = s.ClampKelvin(def.Color.Kelvin)
		}
		if def.Location != "" {
			s.LocationID = [16]byte(uuid.NewSHA1(idNamespace, []byte(def.Location)))
			s.LocationLabel = def.Location
		}
		if def.Group != "" {
			s.GroupID = [16]byte(uuid.NewSHA1(idNamespace, []byte(def.Group)))
			s.GroupLabel = def.Group
		}
		for i, zc := range def.ZoneColors {
			if i >= s.ZoneCount {
				break
			}
			s.ZoneColors[i] = packets.LightHsbk(zc)
		}
		if def.InfraredBrightness != nil && s.Product.Features.Infrared {
			s.InfraredBrightness = *def.InfraredBrightness
		}
		if def.HevCycleDuration != nil && s.Product.Features.Hev {
			s.HevCycleDuration = *def.HevCycleDuration
		}
		if def.HevIndication != nil && s.Product.Features.Hev {
			s.HevIndication = *def.HevIndication
		}
	})

	return d, nil
}

func applyConfigScenarios(manager *scenarios.Manager, cfg *config.ScenariosConfig, logger *log.Logger) {
	if cfg.Global != nil {
		manager.SetGlobal(cfg.Global)
		logger.Info("Applied global scenario from config")
	}
	applyScope(manager, scenarios.ScopeDevice, cfg.Devices, logger)
	applyScope(manager, scenarios.ScopeType, cfg.Types, logger)
	applyScope(manager, scenarios.ScopeLocation, cfg.Locations, logger)
	applyScope(manager, scenarios.ScopeGroup, cfg.Groups, logger)
}

func applyScope(manager *scenarios.Manager, scope string, configs map[string]*scenarios.Config, logger *log.Logger) {
	if len(configs) == 0 {
		return
	}
	for id, cfg := range configs {
		manager.Set(scope, id, cfg)
	}
	logger.Infof("Applied %d %s scenario(s) from config", len(configs), scope)
}

func listProducts() {
	fmt.Println("Available products:")
	for _, p := range products.All() {
		caps := capabilitySummary(p.Features)
		fmt.Printf("  %4d  %-28s %s\n", p.PID, products.RegistryName(p.PID), caps)
	}
}

func capabilitySummary(f products.Capabilities) string {
	var caps []string
	if f.Color {
		caps = append(caps, "color")
	}
	if f.Infrared {
		caps = append(caps, "infrared")
	}
	if f.Multizone {
		caps = append(caps, "multizone")
	}
	if f.ExtendedMultizone {
		caps = append(caps, "extended-multizone")
	}
	if f.Matrix {
		caps = append(caps, "matrix")
	}
	if f.Chain {
		caps = append(caps, "chain")
	}
	if f.Hev {
		caps = append(caps, "hev")
	}
	if f.Relays {
		caps = append(caps, "relays")
	}
	if f.Buttons {
		caps = append(caps, "buttons")
	}
	if len(caps) == 0 {
		return "white"
	}
	return strings.Join(caps, ", ")
}
