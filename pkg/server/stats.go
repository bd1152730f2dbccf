package server

import (
	"sync/atomic"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
)

type stats struct {
	packetsReceived atomic.Uint64
	packetsSent     atomic.Uint64
	errors          atomic.Uint64
	startedAt       time.Time
}

// Stats is a point-in-time view of the server counters.
type Stats struct {
	PacketsReceived uint64  `json:"packets_received"`
	PacketsSent     uint64  `json:"packets_sent"`
	Errors          uint64  `json:"errors"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	DeviceCount     int     `json:"device_count"`
	ActivityEnabled bool    `json:"activity_enabled"`
}

// GetStats returns the current counters.
func (s *Server) GetStats() Stats {
	var uptime float64
	if !s.stats.startedAt.IsZero() {
		uptime = time.Since(s.stats.startedAt).Seconds()
	}
	activity := false
	for _, o := range s.activityObservers {
		if _, ok := o.(devices.ActivityRecorder); ok {
			activity = true
			break
		}
	}
	return Stats{
		PacketsReceived: s.stats.packetsReceived.Load(),
		PacketsSent:     s.stats.packetsSent.Load(),
		Errors:          s.stats.errors.Load(),
		UptimeSeconds:   uptime,
		DeviceCount:     s.manager.Len(),
		ActivityEnabled: activity,
	}
}
