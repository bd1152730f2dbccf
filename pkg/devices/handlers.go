package devices

import (
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
)

// Capability is the capability a handler requires from a device before it
// is dispatched.
type Capability int

const (
	// CapAlways marks handlers every device answers.
	CapAlways Capability = iota
	// CapLight marks handlers any light answers, including
	// color-temperature-only lights. Switches refuse them.
	CapLight
	CapInfrared
	CapMultizone
	CapExtendedMultizone
	CapMatrix
	CapHev
	CapRelays
)

// Has reports whether the device state satisfies a handler capability.
func (s *State) Has(c Capability) bool {
	f := s.Product.Features
	switch c {
	case CapAlways:
		return true
	case CapLight:
		return s.HasColorState()
	case CapInfrared:
		return f.Infrared
	case CapMultizone:
		return f.Multizone
	case CapExtendedMultizone:
		return f.Multizone && f.ExtendedMultizone
	case CapMatrix:
		return f.Matrix
	case CapHev:
		return f.Hev
	case CapRelays:
		return f.Relays
	}
	return false
}

// request carries the per-request context handlers may consult. Handlers
// are pure with respect to concurrency: they never perform I/O and never
// block.
type request struct {
	header protocol.Header
	now    time.Time
}

// resRequired reports whether the client asked for a State response to a
// setter. Getters respond regardless, the way real firmware does.
func (r request) resRequired() bool {
	return r.header.ResponseRequired()
}

// result is the outcome of a handler: the ordered response payloads, and
// whether the request mutated state together with its transition duration
// for the state-change observers.
type result struct {
	payloads   []packets.Payload
	mutated    bool
	durationMs uint32
}

func respond(payloads ...packets.Payload) result {
	return result{payloads: payloads}
}

func mutate(durationMs uint32, payloads ...packets.Payload) result {
	return result{payloads: payloads, mutated: true, durationMs: durationMs}
}

type handlerFunc func(s *State, p packets.Payload, req request) result

type handlerEntry struct {
	capability Capability
	handle     handlerFunc
}

// handlers is the static dispatch table from request packet type to
// handler, populated at startup and read-only afterwards.
var handlers = map[uint16]handlerEntry{}

func registerHandler(pktType uint16, capability Capability, fn handlerFunc) {
	handlers[pktType] = handlerEntry{capability: capability, handle: fn}
}

// HandlesPacket reports whether the device answers the given packet type,
// i.e. a handler exists and its required capability is present.
func (s *State) HandlesPacket(pktType uint16) bool {
	h, ok := handlers[pktType]
	return ok && s.Has(h.capability)
}
