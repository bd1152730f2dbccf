package protocol

import (
	"fmt"

	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

// Message represents a LIFX LAN protocol message.
type Message struct {
	Header  Header
	Payload packets.Payload
}

// NewMessage returns a new Message with the given payload.
func NewMessage(payload packets.Payload) *Message {
	h := NewHeader(payload.PayloadType())
	h.Size = uint16(HeaderSize + payload.Size())

	return &Message{
		Header:  h,
		Payload: payload,
	}
}

// SetSource sets the source of the message, which is
// sent back in the device response.
func (m *Message) SetSource(source uint32) {
	m.Header.Source = source
}

// SetSequence sets the sequence of a Message which can be used to track message order.
func (m *Message) SetSequence(seq uint8) {
	m.Header.Sequence = seq
}

// SetTarget sets the target device of a message.
// For broadcast messages target is an empty [8]byte.
func (m *Message) SetTarget(target [8]byte) {
	m.Header.SetTarget(target)
}

// SetAckRequired sets whether an Ack is required.
func (m *Message) SetAckRequired(v bool) {
	m.Header.SetAckRequired(v)
}

// SetResponseRequired sets whether a response is required.
func (m *Message) SetResponseRequired(v bool) {
	m.Header.SetResponseRequired(v)
}

// String implements Stringer interface for easy logging.
func (m *Message) String() string {
	return fmt.Sprintf("Message{Type: %d, Size: %d, Payload: %#v}", m.Header.Type, m.Header.Size, m.Payload)
}

// MarshalBinary encodes the Message into its binary wire format.
func (m *Message) MarshalBinary() ([]byte, error) {
	if m.Payload == nil {
		return nil, fmt.Errorf("cannot marshal message with nil payload")
	}

	payloadBytes, err := m.Payload.MarshalBinary()
	if err != nil {
		return nil, err
	}

	m.Header.Type = m.Payload.PayloadType()
	m.Header.Size = uint16(len(payloadBytes) + HeaderSize)

	headerBytes, err := m.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return append(headerBytes, payloadBytes...), nil
}

// UnmarshalBinary decodes a message from its binary wire format.
// Unknown payload types decode to a *packets.Opaque.
func (m *Message) UnmarshalBinary(data []byte) error {
	if err := m.Header.UnmarshalBinary(data); err != nil {
		return err
	}

	payload, err := packets.Decode(m.Header.Type, data[HeaderSize:])
	if err != nil {
		return err
	}

	m.Payload = payload
	return nil
}
