// Package server implements the emulator's UDP front: a single socket
// whose datagrams are decoded, routed to one or every device, and whose
// responses are transmitted with the per-response delays the scenario
// layer attached.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/protocol"
	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultPort is the LIFX LAN protocol port.
	DefaultPort = 56700

	recvBufferSize = 2048
)

// Server owns the UDP socket and the device set behind it.
type Server struct {
	bindAddr string
	port     int

	manager         *devices.Manager
	scenarioManager *scenarios.Manager
	scenarioStore   scenarios.Store
	deviceStore     devices.Store

	activityObservers []devices.ActivityObserver
	stateObservers    []devices.StateChangeObserver

	conn   *net.UDPConn
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats stats

	mu sync.RWMutex
}

// Option overrides configurable Server options.
type Option func(*Server)

// WithBindAddress sets the address the UDP socket binds to.
func WithBindAddress(addr string) Option {
	return func(s *Server) { s.bindAddr = addr }
}

// WithPort sets the UDP port. Port 0 picks a free one at Start.
func WithPort(port int) Option {
	return func(s *Server) { s.port = port }
}

// WithScenarioManager shares a hierarchical scenario manager with every
// device of the server.
func WithScenarioManager(m *scenarios.Manager) Option {
	return func(s *Server) { s.scenarioManager = m }
}

// WithScenarioStore sets the persistence hook invoked after scenario
// mutations.
func WithScenarioStore(store scenarios.Store) Option {
	return func(s *Server) { s.scenarioStore = store }
}

// WithDeviceStore sets the persistence hook attached to every device.
func WithDeviceStore(store devices.Store) Option {
	return func(s *Server) { s.deviceStore = store }
}

// WithActivityObserver registers an activity observer for packet events.
func WithActivityObserver(o devices.ActivityObserver) Option {
	return func(s *Server) { s.activityObservers = append(s.activityObservers, o) }
}

// WithStateObserver registers a state-change observer attached to every
// device.
func WithStateObserver(o devices.StateChangeObserver) Option {
	return func(s *Server) { s.stateObservers = append(s.stateObservers, o) }
}

// New returns a Server owning the given device manager.
func New(manager *devices.Manager, opts ...Option) *Server {
	s := &Server{
		bindAddr:        "127.0.0.1",
		port:            DefaultPort,
		manager:         manager,
		scenarioManager: scenarios.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Manager returns the device manager.
func (s *Server) Manager() *devices.Manager {
	return s.manager
}

// ScenarioManager returns the shared scenario manager.
func (s *Server) ScenarioManager() *scenarios.Manager {
	return s.scenarioManager
}

// Port returns the bound UDP port once the server started.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port
}

// Start binds the UDP socket and begins reading datagrams.
func (s *Server) Start() error {
	addr := &net.UDPAddr{IP: net.ParseIP(s.bindAddr), Port: s.port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s:%d: %w", s.bindAddr, s.port, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.port = conn.LocalAddr().(*net.UDPAddr).Port
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.stats.startedAt = time.Now()
	s.mu.Unlock()

	// Devices advertise the bound port in StateService.
	for _, d := range s.manager.List() {
		port := uint32(s.port)
		d.Inspect(func(st *devices.State) { st.Port = port })
	}

	s.wg.Add(1)
	go s.readLoop()

	log.WithFields(log.Fields{"addr": s.bindAddr, "port": s.port}).Info("LIFX emulator listening")
	return nil
}

// Stop cancels the reader and every outstanding per-datagram task.
// Scheduled delayed responses abort without sending. Stopping a server
// that never started is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	conn, cancel := s.conn, s.cancel
	s.conn, s.cancel = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn == nil {
		return nil
	}
	err := conn.Close()
	s.wg.Wait()
	log.Info("LIFX emulator stopped")
	return err
}

// AddDevice registers a device, rewriting its UDP port to the server's
// bound port and wiring the shared scenario manager, the persistence hook
// and the state observers.
func (s *Server) AddDevice(d *devices.Device) error {
	d.SetScenarioManager(s.scenarioManager)
	if s.deviceStore != nil {
		d.SetStore(s.deviceStore)
	}
	for _, o := range s.stateObservers {
		d.AddStateObserver(o)
	}
	port := uint32(s.Port())
	d.Inspect(func(st *devices.State) { st.Port = port })

	return s.manager.Add(d)
}

// RemoveDevice unregisters a device by serial.
func (s *Server) RemoveDevice(serial string) error {
	_, err := s.manager.Remove(serial)
	return err
}

// GetDevice returns the device with the given serial, or nil.
func (s *Server) GetDevice(serial string) *devices.Device {
	return s.manager.Get(serial)
}

// GetAllDevices returns every device in registration order.
func (s *Server) GetAllDevices() []*devices.Device {
	return s.manager.List()
}

// InvalidateAllScenarioCaches discards every device's cached resolved
// scenario. The management collaborator is obliged to call this after any
// scenario mutation.
func (s *Server) InvalidateAllScenarioCaches() {
	s.scenarioManager.Invalidate()
	for _, d := range s.manager.List() {
		d.InvalidateScenarioCache()
	}
}

// PersistScenarios invokes the scenario persistence hook with the current
// hierarchy. Errors are logged and swallowed.
func (s *Server) PersistScenarios(ctx context.Context) {
	if s.scenarioStore == nil {
		return
	}
	if err := s.scenarioStore.Save(ctx, s.scenarioManager.Snapshot()); err != nil {
		log.WithError(err).Warn("Failed to persist scenarios")
	}
}

// GetRecentActivity returns the events of the first observer that records
// them, or nil.
func (s *Server) GetRecentActivity() []devices.PacketEvent {
	for _, o := range s.activityObservers {
		if r, ok := o.(devices.ActivityRecorder); ok {
			return r.GetRecentActivity()
		}
	}
	return nil
}

func (s *Server) readLoop() {
	defer s.wg.Done()

	s.mu.RLock()
	conn, ctx := s.conn, s.ctx
	s.mu.RUnlock()
	if conn == nil {
		// Stop ran before this goroutine was scheduled.
		return
	}

	buf := make([]byte, recvBufferSize)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return
		}

		data := append([]byte(nil), buf[:n]...)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleDatagram(ctx, data, addr)
		}()
	}
}

// handleDatagram processes one datagram: header decode, routing, engine
// dispatch per recipient and response transmission.
func (s *Server) handleDatagram(ctx context.Context, data []byte, addr *net.UDPAddr) {
	var header protocol.Header
	if err := header.UnmarshalBinary(data); err != nil {
		s.stats.errors.Add(1)
		log.WithError(err).WithField("addr", addr).Debug("Dropping undecodable datagram")
		return
	}
	if err := header.ValidateWire(data); err != nil {
		s.stats.errors.Add(1)
		log.WithError(err).WithField("addr", addr).Debug("Dropping invalid datagram")
		return
	}

	s.stats.packetsReceived.Add(1)
	s.emitReceived(header, addr)

	payload, err := packets.Decode(header.Type, data[protocol.HeaderSize:header.Size])
	if err != nil {
		s.stats.errors.Add(1)
		log.WithError(err).WithFields(log.Fields{
			"addr":     addr,
			"pkt_type": header.Type,
		}).Debug("Dropping datagram with undecodable payload")
		return
	}

	for _, d := range s.recipients(header) {
		s.dispatch(ctx, d, header, payload, addr)
	}
}

// recipients resolves the target devices: every device for broadcasts, the
// single matching device otherwise, in the manager's insertion order.
func (s *Server) recipients(header protocol.Header) []*devices.Device {
	if header.IsBroadcast() {
		return s.manager.List()
	}
	if d := s.manager.Get(header.TargetSerial().String()); d != nil {
		return []*devices.Device{d}
	}
	return nil
}

// dispatch runs one device's engine and transmits its responses. The ack
// split: when the scenario does not target the ack type the server emits
// the acknowledgement itself, before the handler responses; when it does,
// the engine has inserted the ack into the response list. A dropped
// request transmits nothing at all.
func (s *Server) dispatch(ctx context.Context, d *devices.Device, header protocol.Header, payload packets.Payload, addr *net.UDPAddr) {
	responses, dropped := d.ProcessPacket(header, payload)
	if dropped {
		return
	}

	if header.AckRequired() && !d.ScenarioTargetsAck() {
		ack := devices.Response{
			Header:  ackHeader(header, d.Serial()),
			Payload: &packets.DeviceAcknowledgement{},
		}
		s.transmit(ctx, ack, addr)
	}

	for _, resp := range responses {
		if resp.Delay > 0 {
			// Delayed transmissions are independent: they never block
			// later responses to this or any other device.
			s.wg.Add(1)
			go func(resp devices.Response) {
				defer s.wg.Done()
				select {
				case <-ctx.Done():
					return
				case <-time.After(resp.Delay):
				}
				s.transmit(ctx, resp, addr)
			}(resp)
			continue
		}
		s.transmit(ctx, resp, addr)
	}
}

func ackHeader(req protocol.Header, serial protocol.Serial) protocol.Header {
	h := protocol.NewHeader(packets.DeviceAcknowledgementType)
	h.Size = protocol.HeaderSize
	h.Source = req.Source
	h.Sequence = req.Sequence
	h.Target = serial.Target()
	return h
}

// transmit encodes and sends one response datagram and emits the packet
// event. UDP is lossy by design: socket errors only bump the counter.
func (s *Server) transmit(ctx context.Context, resp devices.Response, addr *net.UDPAddr) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	msg := protocol.Message{Header: resp.Header, Payload: resp.Payload}
	data, err := msg.MarshalBinary()
	if err != nil {
		s.stats.errors.Add(1)
		log.WithError(err).WithField("pkt_type", resp.Header.Type).Warn("Failed to encode response")
		return
	}

	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return
	}
	if _, err := conn.WriteToUDP(data, addr); err != nil {
		s.stats.errors.Add(1)
		return
	}

	s.stats.packetsSent.Add(1)
	s.emitSent(resp.Header, addr)
}

func (s *Server) emitReceived(header protocol.Header, addr *net.UDPAddr) {
	if len(s.activityObservers) == 0 {
		return
	}
	event := devices.PacketEvent{
		Timestamp:  time.Now(),
		Direction:  devices.DirectionRx,
		PacketType: header.Type,
		PacketName: packets.Name(header.Type),
		Addr:       addr,
	}
	if !header.TargetSerial().IsNil() {
		event.Target = header.TargetSerial().String()
	}
	for _, o := range s.activityObservers {
		o.OnPacketReceived(event)
	}
}

func (s *Server) emitSent(header protocol.Header, addr *net.UDPAddr) {
	if len(s.activityObservers) == 0 {
		return
	}
	event := devices.PacketEvent{
		Timestamp:  time.Now(),
		Direction:  devices.DirectionTx,
		PacketType: header.Type,
		PacketName: packets.Name(header.Type),
		Serial:     header.TargetSerial().String(),
		Addr:       addr,
	}
	for _, o := range s.activityObservers {
		o.OnPacketSent(event)
	}
}
