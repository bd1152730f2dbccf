// Package scenarios implements the fault-injection layer: per-scope
// scenario configs, the hierarchical manager that owns them and the
// precedence merge that resolves the effective scenario for a device.
package scenarios

import "time"

// FirmwareVersion overrides the (major, minor) firmware version a device
// reports.
type FirmwareVersion struct {
	Major uint16 `json:"major" yaml:"major"`
	Minor uint16 `json:"minor" yaml:"minor"`
}

// Config is a fault-injection configuration for a single scope level.
// Every field is optional; nil means "not set at this level".
type Config struct {
	// DropPackets maps a request packet type to the probability in [0,1]
	// that the request is silently dropped.
	DropPackets map[uint16]float64 `json:"drop_packets,omitempty" yaml:"drop_packets,omitempty"`

	// ResponseDelays maps a response packet type to seconds of delay
	// applied before transmission.
	ResponseDelays map[uint16]float64 `json:"response_delays,omitempty" yaml:"response_delays,omitempty"`

	// MalformedPackets lists response packet types emitted as structurally
	// corrupt payloads of the correct length.
	MalformedPackets []uint16 `json:"malformed_packets,omitempty" yaml:"malformed_packets,omitempty"`

	// InvalidFieldValues lists response packet types emitted with
	// syntactically valid but semantically out-of-range fields.
	InvalidFieldValues []uint16 `json:"invalid_field_values,omitempty" yaml:"invalid_field_values,omitempty"`

	// FirmwareVersion overrides the firmware version the device reports.
	FirmwareVersion *FirmwareVersion `json:"firmware_version,omitempty" yaml:"firmware_version,omitempty"`

	// PartialResponses lists response packet types whose multi-packet
	// responses are truncated to a uniformly random count in [1, N-1].
	PartialResponses []uint16 `json:"partial_responses,omitempty" yaml:"partial_responses,omitempty"`

	// SendUnhandled answers packets the device would otherwise ignore with
	// a StateUnhandled carrying the original packet type.
	SendUnhandled *bool `json:"send_unhandled,omitempty" yaml:"send_unhandled,omitempty"`
}

// IsZero reports whether no field is set.
func (c *Config) IsZero() bool {
	return c == nil || (c.DropPackets == nil && c.ResponseDelays == nil &&
		c.MalformedPackets == nil && c.InvalidFieldValues == nil &&
		c.FirmwareVersion == nil && c.PartialResponses == nil && c.SendUnhandled == nil)
}

// Resolved is the effective scenario of a device after the precedence
// merge. It is cached on the device and invalidated by the manager's
// version counter.
type Resolved struct {
	DropPackets        map[uint16]float64
	ResponseDelays     map[uint16]float64
	MalformedPackets   map[uint16]bool
	InvalidFieldValues map[uint16]bool
	PartialResponses   map[uint16]bool
	FirmwareVersion    *FirmwareVersion
	SendUnhandled      *bool
}

// merge overlays cfg onto r: scalars replace, maps overlay key-by-key and
// sets replace wholesale.
func (r *Resolved) merge(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.DropPackets != nil {
		if r.DropPackets == nil {
			r.DropPackets = make(map[uint16]float64, len(cfg.DropPackets))
		}
		for k, v := range cfg.DropPackets {
			r.DropPackets[k] = v
		}
	}
	if cfg.ResponseDelays != nil {
		if r.ResponseDelays == nil {
			r.ResponseDelays = make(map[uint16]float64, len(cfg.ResponseDelays))
		}
		for k, v := range cfg.ResponseDelays {
			r.ResponseDelays[k] = v
		}
	}
	if cfg.MalformedPackets != nil {
		r.MalformedPackets = toSet(cfg.MalformedPackets)
	}
	if cfg.InvalidFieldValues != nil {
		r.InvalidFieldValues = toSet(cfg.InvalidFieldValues)
	}
	if cfg.PartialResponses != nil {
		r.PartialResponses = toSet(cfg.PartialResponses)
	}
	if cfg.FirmwareVersion != nil {
		v := *cfg.FirmwareVersion
		r.FirmwareVersion = &v
	}
	if cfg.SendUnhandled != nil {
		v := *cfg.SendUnhandled
		r.SendUnhandled = &v
	}
}

func toSet(types []uint16) map[uint16]bool {
	s := make(map[uint16]bool, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// DropProbability returns the configured drop probability for a request
// packet type, or 0.
func (r *Resolved) DropProbability(pktType uint16) float64 {
	if r == nil {
		return 0
	}
	return r.DropPackets[pktType]
}

// HasDrop reports whether a drop entry exists for pktType, regardless of
// its probability.
func (r *Resolved) HasDrop(pktType uint16) bool {
	if r == nil {
		return false
	}
	_, ok := r.DropPackets[pktType]
	return ok
}

// Delay returns the transmission delay configured for a response packet
// type, or 0.
func (r *Resolved) Delay(pktType uint16) time.Duration {
	if r == nil {
		return 0
	}
	return time.Duration(r.ResponseDelays[pktType] * float64(time.Second))
}

// HasDelay reports whether a delay entry exists for pktType, even a zero
// one.
func (r *Resolved) HasDelay(pktType uint16) bool {
	if r == nil {
		return false
	}
	_, ok := r.ResponseDelays[pktType]
	return ok
}

// IsMalformed reports whether responses of pktType are corrupted.
func (r *Resolved) IsMalformed(pktType uint16) bool {
	return r != nil && r.MalformedPackets[pktType]
}

// HasInvalidFields reports whether responses of pktType carry out-of-range
// field values.
func (r *Resolved) HasInvalidFields(pktType uint16) bool {
	return r != nil && r.InvalidFieldValues[pktType]
}

// IsPartial reports whether multi-packet responses of pktType are
// truncated.
func (r *Resolved) IsPartial(pktType uint16) bool {
	return r != nil && r.PartialResponses[pktType]
}

// TargetsAck reports whether the scenario targets the acknowledgement
// packet type through a delay or drop entry. When it does, the device
// engine, not the server, emits the ack so the scenario filters can act
// on it.
func (r *Resolved) TargetsAck(ackType uint16) bool {
	return r.HasDelay(ackType) || r.HasDrop(ackType)
}
