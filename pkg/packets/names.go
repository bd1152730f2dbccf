package packets

import "strconv"

// names maps packet types to their protocol names, filled by register.
var names = map[uint16]string{}

// Name returns the protocol name of a packet type, or "Unknown(<type>)" for
// types the emulator has no codec for.
func Name(pktType uint16) string {
	if n, ok := names[pktType]; ok {
		return n
	}
	return "Unknown(" + strconv.Itoa(int(pktType)) + ")"
}
