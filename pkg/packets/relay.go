package packets

// Relay packet types (816–818), used by LIFX Switch devices.
const (
	RelayGetPowerType   uint16 = 816
	RelaySetPowerType   uint16 = 817
	RelayStatePowerType uint16 = 818
)

func init() {
	register(RelayGetPowerType, "GetRPower", func() Payload { return &RelayGetPower{} })
	register(RelaySetPowerType, "SetRPower", func() Payload { return &RelaySetPower{} })
	register(RelayStatePowerType, "StateRPower", func() Payload { return &RelayStatePower{} })
}

type RelayGetPower struct {
	RelayIndex uint8
}

func (p *RelayGetPower) PayloadType() uint16               { return RelayGetPowerType }
func (p *RelayGetPower) Size() int                         { return 1 }
func (p *RelayGetPower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *RelayGetPower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// RelaySetPower switches a single relay. Only 0 and 65535 are meaningful.
type RelaySetPower struct {
	RelayIndex uint8
	Level      uint16
}

func (p *RelaySetPower) PayloadType() uint16               { return RelaySetPowerType }
func (p *RelaySetPower) Size() int                         { return 3 }
func (p *RelaySetPower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *RelaySetPower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type RelayStatePower struct {
	RelayIndex uint8
	Level      uint16
}

func (p *RelayStatePower) PayloadType() uint16               { return RelayStatePowerType }
func (p *RelayStatePower) Size() int                         { return 3 }
func (p *RelayStatePower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *RelayStatePower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }
