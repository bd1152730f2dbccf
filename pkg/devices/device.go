package devices

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	log "github.com/sirupsen/logrus"
)

// Response is one packet a device wants transmitted: a fully stamped
// header, its payload and the scenario delay to wait before sending it.
type Response struct {
	Header  protocol.Header
	Payload packets.Payload
	Delay   time.Duration
}

// malformedMarker fills corrupted payloads. Length stays correct; readers
// parse fields that are semantically nonsense.
const malformedMarker byte = 0xAA

// Device is a single emulated device: its state plus the packet-processing
// engine. The engine's synchronous phase is serialised by the device lock,
// so handlers never observe state mid-update.
type Device struct {
	mu    sync.Mutex
	state *State

	scenarioManager *scenarios.Manager
	resolved        *scenarios.Resolved
	resolvedVersion uint64

	store Store

	stateObservers []StateChangeObserver

	rng *rand.Rand
	now func() time.Time
}

// New returns a device around the given state.
func New(state *State) *Device {
	return &Device{
		state: state,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// Serial returns the device serial.
func (d *Device) Serial() protocol.Serial {
	return d.state.Serial
}

// SetScenarioManager attaches the shared hierarchical scenario manager.
func (d *Device) SetScenarioManager(m *scenarios.Manager) {
	d.mu.Lock()
	d.scenarioManager = m
	d.resolved = nil
	d.resolvedVersion = 0
	d.mu.Unlock()
}

// SetStore attaches the persistence hook invoked after state mutations.
func (d *Device) SetStore(s Store) {
	d.mu.Lock()
	d.store = s
	d.mu.Unlock()
}

// AddStateObserver registers a state-change observer. Callbacks run
// synchronously on the engine's calling goroutine.
func (d *Device) AddStateObserver(o StateChangeObserver) {
	d.mu.Lock()
	d.stateObservers = append(d.stateObservers, o)
	d.mu.Unlock()
}

// InvalidateScenarioCache discards the cached resolved scenario. The
// management collaborator calls this (via the server broadcast) after any
// scenario mutation.
func (d *Device) InvalidateScenarioCache() {
	d.mu.Lock()
	d.resolved = nil
	d.resolvedVersion = 0
	d.mu.Unlock()
}

// Inspect runs fn with the device state under the engine lock, giving
// readers a consistent snapshot between pure phases.
func (d *Device) Inspect(fn func(*State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.state)
}

// Update runs fn with the device state under the engine lock and then
// fires state-change observers and the persistence hook, attributing the
// change to requestType.
func (d *Device) Update(requestType uint16, fn func(*State)) {
	d.mu.Lock()
	fn(d.state)
	snap := d.snapshotLocked()
	observers := append([]StateChangeObserver(nil), d.stateObservers...)
	d.mu.Unlock()

	for _, o := range observers {
		o.OnStateChanged(d, requestType, 0)
	}
	d.persist(snap)
}

// resolvedScenario returns the cached resolved scenario, re-resolving when
// the manager's version counter moved. Callers hold the device lock.
func (d *Device) resolvedScenario() *scenarios.Resolved {
	if d.scenarioManager == nil {
		return nil
	}
	if v := d.scenarioManager.Version(); d.resolved == nil || d.resolvedVersion != v {
		d.resolved, d.resolvedVersion = d.scenarioManager.Resolve(
			d.state.Serial.String(),
			d.state.TypeName(),
			d.state.LocationLabel,
			d.state.GroupLabel,
		)
	}
	return d.resolved
}

// sendUnhandled resolves the unhandled-request policy: the scenario value
// when set, otherwise the switch default of answering with StateUnhandled.
func (d *Device) sendUnhandled(resolved *scenarios.Resolved) bool {
	if resolved != nil && resolved.SendUnhandled != nil {
		return *resolved.SendUnhandled
	}
	return d.state.Product.Features.Relays
}

// ScenarioTargetsAck reports whether the device's resolved scenario
// targets the acknowledgement packet type. The server consults this to
// decide which side of the ack split applies.
func (d *Device) ScenarioTargetsAck() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolvedScenario().TargetsAck(packets.DeviceAcknowledgementType)
}

// ProcessPacket runs the engine pipeline for one decoded request and
// returns the ordered response list with per-response delay hints.
// dropped reports that the scenario swallowed the request: the server must
// transmit nothing for it, acknowledgement included.
func (d *Device) ProcessPacket(header protocol.Header, payload packets.Payload) (responses []Response, dropped bool) {
	d.mu.Lock()

	// Scope check. The server routes unicast packets already; the engine
	// repeats the check defensively.
	if !header.IsBroadcast() && header.TargetSerial() != d.state.Serial {
		d.mu.Unlock()
		return nil, false
	}

	resolved := d.resolvedScenario()

	// Drop filter. A dropped request produces nothing downstream.
	if p := resolved.DropProbability(header.Type); p > 0 && d.rng.Float64() < p {
		d.mu.Unlock()
		log.WithFields(log.Fields{
			"serial":   d.state.Serial.String(),
			"pkt_type": header.Type,
		}).Debug("Scenario dropped request")
		return nil, true
	}

	req := request{header: header, now: d.now()}

	var payloads []packets.Payload

	// When the scenario targets the ack type the engine, not the server,
	// emits the ack so the scenario filters can act on it.
	if header.AckRequired() && resolved.TargetsAck(packets.DeviceAcknowledgementType) {
		if p := resolved.DropProbability(packets.DeviceAcknowledgementType); !(p > 0 && d.rng.Float64() < p) {
			payloads = append(payloads, &packets.DeviceAcknowledgement{})
		}
	}

	var res result
	if h, ok := handlers[header.Type]; ok && d.state.Has(h.capability) {
		res = h.handle(d.state, payload, req)
	} else if d.sendUnhandled(resolved) {
		res = respond(&packets.DeviceStateUnhandled{UnhandledType: header.Type})
	}
	payloads = append(payloads, res.payloads...)

	payloads = d.applyScenarioFilters(resolved, payloads)

	responses = make([]Response, 0, len(payloads))
	for _, p := range payloads {
		responses = append(responses, Response{
			Header:  d.responseHeader(header, p),
			Payload: p,
			Delay:   resolved.Delay(p.PayloadType()),
		})
	}

	var snap Snapshot
	var observers []StateChangeObserver
	if res.mutated {
		snap = d.snapshotLocked()
		observers = append(observers, d.stateObservers...)

		// A location or group label change re-scopes the device in the
		// scenario hierarchy, so every cached scenario goes stale.
		if header.Type == packets.DeviceSetLocationType || header.Type == packets.DeviceSetGroupType {
			if d.scenarioManager != nil {
				d.scenarioManager.Invalidate()
			}
		}
	}
	d.mu.Unlock()

	if res.mutated {
		for _, o := range observers {
			o.OnStateChanged(d, header.Type, res.durationMs)
		}
		d.persist(snap)
	}

	return responses, false
}

// applyScenarioFilters runs the malformed, invalid-field and partial
// post-filters, in that order, over the handler output.
func (d *Device) applyScenarioFilters(resolved *scenarios.Resolved, payloads []packets.Payload) []packets.Payload {
	if resolved == nil || len(payloads) == 0 {
		return payloads
	}

	if fw := resolved.FirmwareVersion; fw != nil {
		for _, p := range payloads {
			switch v := p.(type) {
			case *packets.DeviceStateHostFirmware:
				v.VersionMajor, v.VersionMinor = fw.Major, fw.Minor
			case *packets.DeviceStateWifiFirmware:
				v.VersionMajor, v.VersionMinor = fw.Major, fw.Minor
			}
		}
	}

	for i, p := range payloads {
		t := p.PayloadType()
		if resolved.IsMalformed(t) {
			data := make([]byte, p.Size())
			for j := range data {
				data[j] = malformedMarker
			}
			payloads[i] = &packets.Opaque{Type: t, Data: data}
			continue
		}
		if resolved.HasInvalidFields(t) {
			payloads[i] = corruptFieldValues(p)
		}
	}

	if len(resolved.PartialResponses) > 0 {
		payloads = d.truncatePartial(resolved, payloads)
	}
	return payloads
}

// truncatePartial keeps a uniformly random k ∈ [1, N-1] packets of every
// response type configured for partial responses, independently per type
// and preserving order. Single-packet responses pass through untouched.
func (d *Device) truncatePartial(resolved *scenarios.Resolved, payloads []packets.Payload) []packets.Payload {
	counts := make(map[uint16]int)
	for _, p := range payloads {
		counts[p.PayloadType()]++
	}

	keep := make(map[uint16]int)
	for t, n := range counts {
		if resolved.IsPartial(t) && n > 1 {
			keep[t] = 1 + d.rng.Intn(n-1)
		}
	}
	if len(keep) == 0 {
		return payloads
	}

	out := payloads[:0]
	seen := make(map[uint16]int)
	for _, p := range payloads {
		t := p.PayloadType()
		if limit, ok := keep[t]; ok {
			if seen[t] >= limit {
				continue
			}
			seen[t]++
		}
		out = append(out, p)
	}
	return out
}

// responseHeader stamps a response header from the request: source,
// sequence and the device serial as target, with the res/ack and tagged
// bits cleared.
func (d *Device) responseHeader(req protocol.Header, p packets.Payload) protocol.Header {
	h := protocol.NewHeader(p.PayloadType())
	h.Size = uint16(protocol.HeaderSize + p.Size())
	h.Source = req.Source
	h.Sequence = req.Sequence
	h.Target = d.state.Serial.Target()
	h.SetTagged(false)
	h.SetAckRequired(false)
	h.SetResponseRequired(false)
	return h
}

// persist hands the snapshot to the persistence hook. Errors are logged
// and swallowed; they never reach the protocol path.
func (d *Device) persist(snap Snapshot) {
	d.mu.Lock()
	store := d.store
	d.mu.Unlock()
	if store == nil {
		return
	}

	go func() {
		if err := store.SaveDeviceState(context.Background(), snap.Serial, snap); err != nil {
			log.WithError(err).WithField("serial", snap.Serial).Warn("Failed to persist device state")
		}
	}()
}
