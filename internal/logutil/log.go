package logutil

import (
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var once sync.Once

// Init configures the process logger once. The level comes from
// LIFX_EMULATOR_LOG_LEVEL and defaults to info; verbose raises it to
// debug so every packet shows up.
func Init(verbose bool) {
	once.Do(func() {
		levelStr := strings.ToLower(os.Getenv("LIFX_EMULATOR_LOG_LEVEL"))
		level, err := log.ParseLevel(levelStr)
		if err != nil {
			level = log.InfoLevel
		}
		if verbose && level < log.DebugLevel {
			level = log.DebugLevel
		}

		log.SetLevel(level)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	})
}
