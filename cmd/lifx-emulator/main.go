// Command lifx-emulator runs a fleet of emulated LIFX devices speaking the
// LAN protocol over UDP, with an optional HTTP management API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Djelibeybi/lifx-emulator/internal/api"
	"github.com/Djelibeybi/lifx-emulator/internal/config"
	"github.com/Djelibeybi/lifx-emulator/internal/logutil"
	"github.com/Djelibeybi/lifx-emulator/internal/storage"
	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"github.com/Djelibeybi/lifx-emulator/pkg/server"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "list-products" {
		listProducts()
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFlag = flag.String("config", "", "path to YAML config file")

		bind    = flag.String("bind", "127.0.0.1", "IP address to bind to")
		port    = flag.Int("port", server.DefaultPort, "UDP port to listen on")
		verbose = flag.Bool("verbose", false, "log every packet sent and received")

		persistent          = flag.Bool("persistent", false, "persist device state across restarts")
		persistentScenarios = flag.Bool("persistent-scenarios", false, "persist test scenarios (requires --persistent)")

		apiEnabled  = flag.Bool("api", false, "enable the HTTP management API")
		apiHost     = flag.String("api-host", "127.0.0.1", "management API host")
		apiPort     = flag.Int("api-port", 8080, "management API port")
		apiActivity = flag.Bool("api-activity", true, "record packet activity for the API")

		productFlags = flag.UintSlice("product", nil, "create a device by product id (repeatable)")
		colorCount   = flag.Int("color", 0, "number of full-color lights")
		ctCount      = flag.Int("color-temperature", 0, "number of color-temperature lights")
		irCount      = flag.Int("infrared", 0, "number of infrared lights")
		hevCount     = flag.Int("hev", 0, "number of HEV clean lights")
		mzCount      = flag.Int("multizone", 0, "number of multizone strips")
		tileCount    = flag.Int("tile", 0, "number of tile chains")
		switchCount  = flag.Int("switch", 0, "number of relay switches")

		mzZones    = flag.Int("multizone-zones", 0, "zones per multizone device")
		mzExtended = flag.Bool("multizone-extended", true, "enable extended multizone support")

		tilesPerChain = flag.Int("tile-count", 0, "tiles per chain device")
		tileWidth     = flag.Int("tile-width", 0, "tile width in zones")
		tileHeight    = flag.Int("tile-height", 0, "tile height in zones")

		serialPrefix = flag.String("serial-prefix", "d073d5", "serial number prefix (6 hex chars)")
		serialStart  = flag.Int("serial-start", 1, "starting serial suffix")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	path, err := config.ResolvePath(*configFlag)
	if err != nil {
		return err
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		settings.ApplyFile(cfg)
	}

	// CLI flags the user actually set override the file.
	overrides := map[string]func(){
		"bind":               func() { settings.Bind = *bind },
		"port":               func() { settings.Port = *port },
		"verbose":            func() { settings.Verbose = *verbose },
		"persistent":         func() { settings.Persistent = *persistent },
		"persistent-scenarios": func() { settings.PersistentScenarios = *persistentScenarios },
		"api":                func() { settings.API = *apiEnabled },
		"api-host":           func() { settings.APIHost = *apiHost },
		"api-port":           func() { settings.APIPort = *apiPort },
		"api-activity":       func() { settings.APIActivity = *apiActivity },
		"color":              func() { settings.Color = *colorCount },
		"color-temperature":  func() { settings.ColorTemperature = *ctCount },
		"infrared":           func() { settings.Infrared = *irCount },
		"hev":                func() { settings.Hev = *hevCount },
		"multizone":          func() { settings.Multizone = *mzCount },
		"tile":               func() { settings.Tile = *tileCount },
		"switch":             func() { settings.Switch = *switchCount },
		"multizone-zones":    func() { settings.MultizoneZones = *mzZones },
		"multizone-extended": func() { settings.MultizoneExtended = *mzExtended },
		"tile-count":         func() { settings.TileCount = *tilesPerChain },
		"tile-width":         func() { settings.TileWidth = *tileWidth },
		"tile-height":        func() { settings.TileHeight = *tileHeight },
		"serial-prefix":      func() { settings.SerialPrefix = *serialPrefix },
		"serial-start":       func() { settings.SerialStart = *serialStart },
	}
	flag.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
	if flag.CommandLine.Changed("product") {
		settings.Products = nil
		for _, pid := range *productFlags {
			settings.Products = append(settings.Products, uint32(pid))
		}
	}

	logutil.Init(settings.Verbose)
	logger := log.StandardLogger()
	if path != "" {
		logger.Infof("Loaded config from %s", path)
	}

	if settings.PersistentScenarios && !settings.Persistent {
		return fmt.Errorf("--persistent-scenarios requires --persistent")
	}

	var deviceStore *storage.FileDeviceStore
	if settings.Persistent {
		deviceStore, err = storage.NewFileDeviceStore("")
		if err != nil {
			return err
		}
		logger.Infof("Persistent storage enabled at %s", deviceStore.Dir())
	}

	scenarioManager := scenarios.NewManager()
	var scenarioStore *storage.FileScenarioStore
	switch {
	case settings.PersistentScenarios:
		scenarioStore, err = storage.NewFileScenarioStore("")
		if err != nil {
			return err
		}
		snap, err := scenarioStore.Load(context.Background())
		if err != nil {
			return err
		}
		scenarioManager.Restore(snap)
		logger.Info("Loaded scenarios from persistent storage")
	case settings.Scenarios != nil:
		applyConfigScenarios(scenarioManager, settings.Scenarios, logger)
	}

	fleet, err := buildDevices(settings, deviceStore, logger)
	if err != nil {
		return err
	}
	if len(fleet) == 0 && !settings.Persistent {
		return fmt.Errorf("no devices configured: use --color, --multizone, --tile, --switch, --product or a config file")
	}

	manager := devices.NewManager()
	opts := []server.Option{
		server.WithBindAddress(settings.Bind),
		server.WithPort(settings.Port),
		server.WithScenarioManager(scenarioManager),
	}
	if deviceStore != nil {
		opts = append(opts, server.WithDeviceStore(deviceStore))
	}
	if scenarioStore != nil {
		opts = append(opts, server.WithScenarioStore(scenarioStore))
	}

	var activity *devices.ActivityLogger
	if settings.API && settings.APIActivity {
		activity = devices.NewActivityLogger(0)
		opts = append(opts, server.WithActivityObserver(activity))
	}

	srv := server.New(manager, opts...)
	for _, d := range fleet {
		if err := srv.AddDevice(d); err != nil {
			return err
		}
	}

	logger.Infof("Starting LIFX Emulator on %s:%d", settings.Bind, settings.Port)
	logger.Infof("Created %d emulated device(s):", len(fleet))
	for _, d := range fleet {
		d.Inspect(func(s *devices.State) {
			logger.Infof("  %s (%s) - %s", s.Label, s.Serial, s.TypeName())
		})
	}

	if err := srv.Start(); err != nil {
		return err
	}

	if settings.API {
		addr := fmt.Sprintf("%s:%d", settings.APIHost, settings.APIPort)
		go func() {
			if err := api.New(srv).Run(addr); err != nil {
				logger.WithError(err).Error("Management API failed")
			}
		}()
		logger.Infof("Management API on http://%s", addr)
	}

	logger.Info("Server running... Press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down server...")
	srv.PersistScenarios(context.Background())
	return srv.Stop()
}
