package packets

// Light packet types (101–149), including infrared and HEV.
const (
	LightGetType                       uint16 = 101
	LightSetColorType                  uint16 = 102
	LightSetWaveformType               uint16 = 103
	LightStateType                     uint16 = 107
	LightGetPowerType                  uint16 = 116
	LightSetPowerType                  uint16 = 117
	LightStatePowerType                uint16 = 118
	LightSetWaveformOptionalType       uint16 = 119
	LightGetInfraredType               uint16 = 120
	LightStateInfraredType             uint16 = 121
	LightSetInfraredType               uint16 = 122
	LightGetHevCycleType               uint16 = 142
	LightSetHevCycleType               uint16 = 143
	LightStateHevCycleType             uint16 = 144
	LightGetHevCycleConfigurationType  uint16 = 145
	LightSetHevCycleConfigurationType  uint16 = 146
	LightStateHevCycleConfigurationType uint16 = 147
	LightGetLastHevCycleResultType     uint16 = 148
	LightStateLastHevCycleResultType   uint16 = 149
)

func init() {
	register(LightGetType, "GetColor", func() Payload { return &LightGet{} })
	register(LightSetColorType, "SetColor", func() Payload { return &LightSetColor{} })
	register(LightSetWaveformType, "SetWaveform", func() Payload { return &LightSetWaveform{} })
	register(LightStateType, "LightState", func() Payload { return &LightState{} })
	register(LightGetPowerType, "GetLightPower", func() Payload { return &LightGetPower{} })
	register(LightSetPowerType, "SetLightPower", func() Payload { return &LightSetPower{} })
	register(LightStatePowerType, "StateLightPower", func() Payload { return &LightStatePower{} })
	register(LightSetWaveformOptionalType, "SetWaveformOptional", func() Payload { return &LightSetWaveformOptional{} })
	register(LightGetInfraredType, "GetInfrared", func() Payload { return &LightGetInfrared{} })
	register(LightStateInfraredType, "StateInfrared", func() Payload { return &LightStateInfrared{} })
	register(LightSetInfraredType, "SetInfrared", func() Payload { return &LightSetInfrared{} })
	register(LightGetHevCycleType, "GetHevCycle", func() Payload { return &LightGetHevCycle{} })
	register(LightSetHevCycleType, "SetHevCycle", func() Payload { return &LightSetHevCycle{} })
	register(LightStateHevCycleType, "StateHevCycle", func() Payload { return &LightStateHevCycle{} })
	register(LightGetHevCycleConfigurationType, "GetHevCycleConfiguration", func() Payload { return &LightGetHevCycleConfiguration{} })
	register(LightSetHevCycleConfigurationType, "SetHevCycleConfiguration", func() Payload { return &LightSetHevCycleConfiguration{} })
	register(LightStateHevCycleConfigurationType, "StateHevCycleConfiguration", func() Payload { return &LightStateHevCycleConfiguration{} })
	register(LightGetLastHevCycleResultType, "GetLastHevCycleResult", func() Payload { return &LightGetLastHevCycleResult{} })
	register(LightStateLastHevCycleResultType, "StateLastHevCycleResult", func() Payload { return &LightStateLastHevCycleResult{} })
}

type LightGet struct{}

func (p *LightGet) PayloadType() uint16               { return LightGetType }
func (p *LightGet) Size() int                         { return 0 }
func (p *LightGet) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGet) UnmarshalBinary(data []byte) error { return nil }

// LightSetColor sets the light color over Duration milliseconds.
// The emulator applies the target color instantly and surfaces the duration
// to state-change observers.
type LightSetColor struct {
	Reserved6 uint8
	Color     LightHsbk
	Duration  uint32
}

func (p *LightSetColor) PayloadType() uint16               { return LightSetColorType }
func (p *LightSetColor) Size() int                         { return 13 }
func (p *LightSetColor) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetColor) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightSetWaveform struct {
	Reserved6 uint8
	Transient uint8
	Color     LightHsbk
	Period    uint32
	Cycles    float32
	SkewRatio int16
	Waveform  uint8
}

func (p *LightSetWaveform) PayloadType() uint16               { return LightSetWaveformType }
func (p *LightSetWaveform) Size() int                         { return 21 }
func (p *LightSetWaveform) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetWaveform) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// LightState reports the current color, power and label of a light.
type LightState struct {
	Color     LightHsbk
	Reserved6 int16
	Power     uint16
	Label     [32]byte
	Reserved7 uint64
}

func (p *LightState) PayloadType() uint16               { return LightStateType }
func (p *LightState) Size() int                         { return 52 }
func (p *LightState) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightState) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightGetPower struct{}

func (p *LightGetPower) PayloadType() uint16               { return LightGetPowerType }
func (p *LightGetPower) Size() int                         { return 0 }
func (p *LightGetPower) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGetPower) UnmarshalBinary(data []byte) error { return nil }

type LightSetPower struct {
	Level    uint16
	Duration uint32
}

func (p *LightSetPower) PayloadType() uint16               { return LightSetPowerType }
func (p *LightSetPower) Size() int                         { return 6 }
func (p *LightSetPower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetPower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightStatePower struct {
	Level uint16
}

func (p *LightStatePower) PayloadType() uint16               { return LightStatePowerType }
func (p *LightStatePower) Size() int                         { return 2 }
func (p *LightStatePower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightStatePower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// LightSetWaveformOptional runs a waveform while keeping any HSBK component
// whose Set flag is zero.
type LightSetWaveformOptional struct {
	Reserved6     uint8
	Transient     uint8
	Color         LightHsbk
	Period        uint32
	Cycles        float32
	SkewRatio     int16
	Waveform      uint8
	SetHue        uint8
	SetSaturation uint8
	SetBrightness uint8
	SetKelvin     uint8
}

func (p *LightSetWaveformOptional) PayloadType() uint16               { return LightSetWaveformOptionalType }
func (p *LightSetWaveformOptional) Size() int                         { return 25 }
func (p *LightSetWaveformOptional) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetWaveformOptional) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightGetInfrared struct{}

func (p *LightGetInfrared) PayloadType() uint16               { return LightGetInfraredType }
func (p *LightGetInfrared) Size() int                         { return 0 }
func (p *LightGetInfrared) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGetInfrared) UnmarshalBinary(data []byte) error { return nil }

type LightStateInfrared struct {
	Brightness uint16
}

func (p *LightStateInfrared) PayloadType() uint16               { return LightStateInfraredType }
func (p *LightStateInfrared) Size() int                         { return 2 }
func (p *LightStateInfrared) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightStateInfrared) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightSetInfrared struct {
	Brightness uint16
}

func (p *LightSetInfrared) PayloadType() uint16               { return LightSetInfraredType }
func (p *LightSetInfrared) Size() int                         { return 2 }
func (p *LightSetInfrared) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetInfrared) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightGetHevCycle struct{}

func (p *LightGetHevCycle) PayloadType() uint16               { return LightGetHevCycleType }
func (p *LightGetHevCycle) Size() int                         { return 0 }
func (p *LightGetHevCycle) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGetHevCycle) UnmarshalBinary(data []byte) error { return nil }

// LightSetHevCycle starts or stops a HEV clean cycle. A zero DurationS
// starts a cycle of the configured default duration.
type LightSetHevCycle struct {
	Enable    uint8
	DurationS uint32
}

func (p *LightSetHevCycle) PayloadType() uint16               { return LightSetHevCycleType }
func (p *LightSetHevCycle) Size() int                         { return 5 }
func (p *LightSetHevCycle) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetHevCycle) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightStateHevCycle struct {
	DurationS  uint32
	RemainingS uint32
	LastPower  uint8
}

func (p *LightStateHevCycle) PayloadType() uint16               { return LightStateHevCycleType }
func (p *LightStateHevCycle) Size() int                         { return 9 }
func (p *LightStateHevCycle) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightStateHevCycle) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightGetHevCycleConfiguration struct{}

func (p *LightGetHevCycleConfiguration) PayloadType() uint16               { return LightGetHevCycleConfigurationType }
func (p *LightGetHevCycleConfiguration) Size() int                         { return 0 }
func (p *LightGetHevCycleConfiguration) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGetHevCycleConfiguration) UnmarshalBinary(data []byte) error { return nil }

type LightSetHevCycleConfiguration struct {
	Indication uint8
	DurationS  uint32
}

func (p *LightSetHevCycleConfiguration) PayloadType() uint16 {
	return LightSetHevCycleConfigurationType
}
func (p *LightSetHevCycleConfiguration) Size() int                         { return 5 }
func (p *LightSetHevCycleConfiguration) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightSetHevCycleConfiguration) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightStateHevCycleConfiguration struct {
	Indication uint8
	DurationS  uint32
}

func (p *LightStateHevCycleConfiguration) PayloadType() uint16 {
	return LightStateHevCycleConfigurationType
}
func (p *LightStateHevCycleConfiguration) Size() int                         { return 5 }
func (p *LightStateHevCycleConfiguration) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightStateHevCycleConfiguration) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type LightGetLastHevCycleResult struct{}

func (p *LightGetLastHevCycleResult) PayloadType() uint16               { return LightGetLastHevCycleResultType }
func (p *LightGetLastHevCycleResult) Size() int                         { return 0 }
func (p *LightGetLastHevCycleResult) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *LightGetLastHevCycleResult) UnmarshalBinary(data []byte) error { return nil }

type LightStateLastHevCycleResult struct {
	Result uint8
}

func (p *LightStateLastHevCycleResult) PayloadType() uint16               { return LightStateLastHevCycleResultType }
func (p *LightStateLastHevCycleResult) Size() int                         { return 1 }
func (p *LightStateLastHevCycleResult) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *LightStateLastHevCycleResult) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }
