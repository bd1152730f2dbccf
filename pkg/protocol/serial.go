package protocol

import (
	"encoding/hex"
	"fmt"
)

// TargetBroadcast marks a message as a broadcast message.
var TargetBroadcast = [8]byte{}

// Serial is a LIFX device serial as set in the protocol Header,
// the first 6 bytes contain the serial number and the last 2 bytes are set to 0.
type Serial [8]byte

// SerialFromHex parses an hex string into a Serial.
func SerialFromHex(hexStr string) (Serial, error) {
	if len(hexStr) != 12 {
		return Serial{}, fmt.Errorf("expected 12 hex chars (6 bytes), got %d", len(hexStr))
	}

	var b [8]byte
	_, err := hex.Decode(b[:6], []byte(hexStr))
	if err != nil {
		return Serial{}, fmt.Errorf("decode error: %v", err)
	}

	return Serial(b), nil
}

// String converts a serial into its hexadecimal equivalent.
func (s Serial) String() string {
	return fmt.Sprintf("%x", s[:6])
}

// IsNil reports whether the serial is unset (all zero).
func (s Serial) IsNil() bool {
	return s == [8]byte{}
}

// Target returns the serial as a header target address.
func (s Serial) Target() [8]byte {
	return [8]byte(s)
}
