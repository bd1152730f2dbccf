// Package packets defines the payloads of the LIFX LAN protocol packets the
// emulator understands, together with a static codec table keyed by packet
// type. Payload types not present in the table decode to an Opaque byte
// slice and never match a handler.
package packets

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Payload is a LIFX packet payload that can be encoded to and decoded from
// its little-endian wire format.
type Payload interface {
	PayloadType() uint16
	Size() int
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Payloads maps a packet type to a constructor for its payload.
// The table is populated at init time and read-only afterwards.
var Payloads = map[uint16]func() Payload{}

func register(pktType uint16, name string, newPayload func() Payload) {
	if _, ok := Payloads[pktType]; ok {
		panic(fmt.Sprintf("duplicate payload registration for type %d", pktType))
	}
	Payloads[pktType] = newPayload
	names[pktType] = name
}

// Decode returns the payload for the given packet type decoded from data.
// Unknown packet types decode to an *Opaque carrying the raw bytes.
func Decode(pktType uint16, data []byte) (Payload, error) {
	newPayload, ok := Payloads[pktType]
	if !ok {
		return &Opaque{Type: pktType, Data: append([]byte(nil), data...)}, nil
	}

	p := newPayload()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decoding payload type %d: %w", pktType, err)
	}
	return p, nil
}

// IsKnown reports whether pktType has a registered payload codec.
func IsKnown(pktType uint16) bool {
	_, ok := Payloads[pktType]
	return ok
}

// Opaque is the payload of a packet type the emulator has no codec for.
// It round-trips the raw bytes and never matches a handler.
type Opaque struct {
	Type uint16
	Data []byte
}

func (p *Opaque) PayloadType() uint16 { return p.Type }
func (p *Opaque) Size() int           { return len(p.Data) }

func (p *Opaque) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), p.Data...), nil
}

func (p *Opaque) UnmarshalBinary(data []byte) error {
	p.Data = append([]byte(nil), data...)
	return nil
}

// marshalFixed encodes a payload struct composed of fixed-size fields.
func marshalFixed(p any) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalFixed decodes a payload struct composed of fixed-size fields.
func unmarshalFixed(p any, data []byte) error {
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, p)
}
