package packets

// Device packet types (2–59) plus the acknowledgement and StateUnhandled.
const (
	DeviceGetServiceType       uint16 = 2
	DeviceStateServiceType     uint16 = 3
	DeviceGetHostInfoType      uint16 = 12
	DeviceStateHostInfoType    uint16 = 13
	DeviceGetHostFirmwareType  uint16 = 14
	DeviceStateHostFirmwareType uint16 = 15
	DeviceGetWifiInfoType      uint16 = 16
	DeviceStateWifiInfoType    uint16 = 17
	DeviceGetWifiFirmwareType  uint16 = 18
	DeviceStateWifiFirmwareType uint16 = 19
	DeviceGetPowerType         uint16 = 20
	DeviceSetPowerType         uint16 = 21
	DeviceStatePowerType       uint16 = 22
	DeviceGetLabelType         uint16 = 23
	DeviceSetLabelType         uint16 = 24
	DeviceStateLabelType       uint16 = 25
	DeviceGetVersionType       uint16 = 32
	DeviceStateVersionType     uint16 = 33
	DeviceGetInfoType          uint16 = 34
	DeviceStateInfoType        uint16 = 35
	DeviceAcknowledgementType  uint16 = 45
	DeviceGetLocationType      uint16 = 48
	DeviceSetLocationType      uint16 = 49
	DeviceStateLocationType    uint16 = 50
	DeviceGetGroupType         uint16 = 51
	DeviceSetGroupType         uint16 = 52
	DeviceStateGroupType       uint16 = 53
	DeviceEchoRequestType      uint16 = 58
	DeviceEchoResponseType     uint16 = 59
	DeviceStateUnhandledType   uint16 = 223
)

// ServiceUDP is the only service the emulator advertises.
const ServiceUDP uint8 = 1

func init() {
	register(DeviceGetServiceType, "GetService", func() Payload { return &DeviceGetService{} })
	register(DeviceStateServiceType, "StateService", func() Payload { return &DeviceStateService{} })
	register(DeviceGetHostInfoType, "GetHostInfo", func() Payload { return &DeviceGetHostInfo{} })
	register(DeviceStateHostInfoType, "StateHostInfo", func() Payload { return &DeviceStateHostInfo{} })
	register(DeviceGetHostFirmwareType, "GetHostFirmware", func() Payload { return &DeviceGetHostFirmware{} })
	register(DeviceStateHostFirmwareType, "StateHostFirmware", func() Payload { return &DeviceStateHostFirmware{} })
	register(DeviceGetWifiInfoType, "GetWifiInfo", func() Payload { return &DeviceGetWifiInfo{} })
	register(DeviceStateWifiInfoType, "StateWifiInfo", func() Payload { return &DeviceStateWifiInfo{} })
	register(DeviceGetWifiFirmwareType, "GetWifiFirmware", func() Payload { return &DeviceGetWifiFirmware{} })
	register(DeviceStateWifiFirmwareType, "StateWifiFirmware", func() Payload { return &DeviceStateWifiFirmware{} })
	register(DeviceGetPowerType, "GetPower", func() Payload { return &DeviceGetPower{} })
	register(DeviceSetPowerType, "SetPower", func() Payload { return &DeviceSetPower{} })
	register(DeviceStatePowerType, "StatePower", func() Payload { return &DeviceStatePower{} })
	register(DeviceGetLabelType, "GetLabel", func() Payload { return &DeviceGetLabel{} })
	register(DeviceSetLabelType, "SetLabel", func() Payload { return &DeviceSetLabel{} })
	register(DeviceStateLabelType, "StateLabel", func() Payload { return &DeviceStateLabel{} })
	register(DeviceGetVersionType, "GetVersion", func() Payload { return &DeviceGetVersion{} })
	register(DeviceStateVersionType, "StateVersion", func() Payload { return &DeviceStateVersion{} })
	register(DeviceGetInfoType, "GetInfo", func() Payload { return &DeviceGetInfo{} })
	register(DeviceStateInfoType, "StateInfo", func() Payload { return &DeviceStateInfo{} })
	register(DeviceAcknowledgementType, "Acknowledgement", func() Payload { return &DeviceAcknowledgement{} })
	register(DeviceGetLocationType, "GetLocation", func() Payload { return &DeviceGetLocation{} })
	register(DeviceSetLocationType, "SetLocation", func() Payload { return &DeviceSetLocation{} })
	register(DeviceStateLocationType, "StateLocation", func() Payload { return &DeviceStateLocation{} })
	register(DeviceGetGroupType, "GetGroup", func() Payload { return &DeviceGetGroup{} })
	register(DeviceSetGroupType, "SetGroup", func() Payload { return &DeviceSetGroup{} })
	register(DeviceStateGroupType, "StateGroup", func() Payload { return &DeviceStateGroup{} })
	register(DeviceEchoRequestType, "EchoRequest", func() Payload { return &DeviceEchoRequest{} })
	register(DeviceEchoResponseType, "EchoResponse", func() Payload { return &DeviceEchoResponse{} })
	register(DeviceStateUnhandledType, "StateUnhandled", func() Payload { return &DeviceStateUnhandled{} })
}

// DeviceGetService asks a device for the service it exposes. Devices answer
// a broadcast GetService with one StateService each.
type DeviceGetService struct{}

func (p *DeviceGetService) PayloadType() uint16              { return DeviceGetServiceType }
func (p *DeviceGetService) Size() int                        { return 0 }
func (p *DeviceGetService) MarshalBinary() ([]byte, error)   { return nil, nil }
func (p *DeviceGetService) UnmarshalBinary(data []byte) error { return nil }

// DeviceStateService carries the service type and the UDP port the device
// listens on.
type DeviceStateService struct {
	Service uint8
	Port    uint32
}

func (p *DeviceStateService) PayloadType() uint16               { return DeviceStateServiceType }
func (p *DeviceStateService) Size() int                         { return 5 }
func (p *DeviceStateService) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateService) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetHostInfo struct{}

func (p *DeviceGetHostInfo) PayloadType() uint16               { return DeviceGetHostInfoType }
func (p *DeviceGetHostInfo) Size() int                         { return 0 }
func (p *DeviceGetHostInfo) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetHostInfo) UnmarshalBinary(data []byte) error { return nil }

type DeviceStateHostInfo struct {
	Signal    float32
	Tx        uint32
	Rx        uint32
	Reserved6 int16
}

func (p *DeviceStateHostInfo) PayloadType() uint16               { return DeviceStateHostInfoType }
func (p *DeviceStateHostInfo) Size() int                         { return 14 }
func (p *DeviceStateHostInfo) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateHostInfo) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetHostFirmware struct{}

func (p *DeviceGetHostFirmware) PayloadType() uint16               { return DeviceGetHostFirmwareType }
func (p *DeviceGetHostFirmware) Size() int                         { return 0 }
func (p *DeviceGetHostFirmware) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetHostFirmware) UnmarshalBinary(data []byte) error { return nil }

// DeviceStateHostFirmware reports the firmware build timestamp and version.
type DeviceStateHostFirmware struct {
	Build        uint64
	Reserved6    [8]byte
	VersionMinor uint16
	VersionMajor uint16
}

func (p *DeviceStateHostFirmware) PayloadType() uint16               { return DeviceStateHostFirmwareType }
func (p *DeviceStateHostFirmware) Size() int                         { return 20 }
func (p *DeviceStateHostFirmware) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateHostFirmware) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetWifiInfo struct{}

func (p *DeviceGetWifiInfo) PayloadType() uint16               { return DeviceGetWifiInfoType }
func (p *DeviceGetWifiInfo) Size() int                         { return 0 }
func (p *DeviceGetWifiInfo) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetWifiInfo) UnmarshalBinary(data []byte) error { return nil }

type DeviceStateWifiInfo struct {
	Signal    float32
	Reserved6 uint32
	Reserved7 uint32
	Reserved8 int16
}

func (p *DeviceStateWifiInfo) PayloadType() uint16               { return DeviceStateWifiInfoType }
func (p *DeviceStateWifiInfo) Size() int                         { return 14 }
func (p *DeviceStateWifiInfo) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateWifiInfo) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetWifiFirmware struct{}

func (p *DeviceGetWifiFirmware) PayloadType() uint16               { return DeviceGetWifiFirmwareType }
func (p *DeviceGetWifiFirmware) Size() int                         { return 0 }
func (p *DeviceGetWifiFirmware) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetWifiFirmware) UnmarshalBinary(data []byte) error { return nil }

type DeviceStateWifiFirmware struct {
	Build        uint64
	Reserved6    [8]byte
	VersionMinor uint16
	VersionMajor uint16
}

func (p *DeviceStateWifiFirmware) PayloadType() uint16               { return DeviceStateWifiFirmwareType }
func (p *DeviceStateWifiFirmware) Size() int                         { return 20 }
func (p *DeviceStateWifiFirmware) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateWifiFirmware) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetPower struct{}

func (p *DeviceGetPower) PayloadType() uint16               { return DeviceGetPowerType }
func (p *DeviceGetPower) Size() int                         { return 0 }
func (p *DeviceGetPower) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetPower) UnmarshalBinary(data []byte) error { return nil }

// DeviceSetPower sets the device power level. Only 0 and 65535 are valid;
// the emulator clamps everything else the way real firmware does.
type DeviceSetPower struct {
	Level uint16
}

func (p *DeviceSetPower) PayloadType() uint16               { return DeviceSetPowerType }
func (p *DeviceSetPower) Size() int                         { return 2 }
func (p *DeviceSetPower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceSetPower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceStatePower struct {
	Level uint16
}

func (p *DeviceStatePower) PayloadType() uint16               { return DeviceStatePowerType }
func (p *DeviceStatePower) Size() int                         { return 2 }
func (p *DeviceStatePower) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStatePower) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetLabel struct{}

func (p *DeviceGetLabel) PayloadType() uint16               { return DeviceGetLabelType }
func (p *DeviceGetLabel) Size() int                         { return 0 }
func (p *DeviceGetLabel) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetLabel) UnmarshalBinary(data []byte) error { return nil }

type DeviceSetLabel struct {
	Label [32]byte
}

func (p *DeviceSetLabel) PayloadType() uint16               { return DeviceSetLabelType }
func (p *DeviceSetLabel) Size() int                         { return 32 }
func (p *DeviceSetLabel) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceSetLabel) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceStateLabel struct {
	Label [32]byte
}

func (p *DeviceStateLabel) PayloadType() uint16               { return DeviceStateLabelType }
func (p *DeviceStateLabel) Size() int                         { return 32 }
func (p *DeviceStateLabel) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateLabel) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetVersion struct{}

func (p *DeviceGetVersion) PayloadType() uint16               { return DeviceGetVersionType }
func (p *DeviceGetVersion) Size() int                         { return 0 }
func (p *DeviceGetVersion) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetVersion) UnmarshalBinary(data []byte) error { return nil }

// DeviceStateVersion reports the vendor and product id of the device.
type DeviceStateVersion struct {
	Vendor    uint32
	Product   uint32
	Reserved6 uint32
}

func (p *DeviceStateVersion) PayloadType() uint16               { return DeviceStateVersionType }
func (p *DeviceStateVersion) Size() int                         { return 12 }
func (p *DeviceStateVersion) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateVersion) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetInfo struct{}

func (p *DeviceGetInfo) PayloadType() uint16               { return DeviceGetInfoType }
func (p *DeviceGetInfo) Size() int                         { return 0 }
func (p *DeviceGetInfo) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetInfo) UnmarshalBinary(data []byte) error { return nil }

// DeviceStateInfo reports device time in nanoseconds since the epoch.
type DeviceStateInfo struct {
	Time     uint64
	Uptime   uint64
	Downtime uint64
}

func (p *DeviceStateInfo) PayloadType() uint16               { return DeviceStateInfoType }
func (p *DeviceStateInfo) Size() int                         { return 24 }
func (p *DeviceStateInfo) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateInfo) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// DeviceAcknowledgement is the empty payload of packet type 45, sent when a
// request has ack_required set.
type DeviceAcknowledgement struct{}

func (p *DeviceAcknowledgement) PayloadType() uint16               { return DeviceAcknowledgementType }
func (p *DeviceAcknowledgement) Size() int                         { return 0 }
func (p *DeviceAcknowledgement) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceAcknowledgement) UnmarshalBinary(data []byte) error { return nil }

type DeviceGetLocation struct{}

func (p *DeviceGetLocation) PayloadType() uint16               { return DeviceGetLocationType }
func (p *DeviceGetLocation) Size() int                         { return 0 }
func (p *DeviceGetLocation) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetLocation) UnmarshalBinary(data []byte) error { return nil }

// DeviceSetLocation updates the device location. The setter wins only when
// its UpdatedAt is strictly newer than the stored one.
type DeviceSetLocation struct {
	Location  [16]byte
	Label     [32]byte
	UpdatedAt uint64
}

func (p *DeviceSetLocation) PayloadType() uint16               { return DeviceSetLocationType }
func (p *DeviceSetLocation) Size() int                         { return 56 }
func (p *DeviceSetLocation) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceSetLocation) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceStateLocation struct {
	Location  [16]byte
	Label     [32]byte
	UpdatedAt uint64
}

func (p *DeviceStateLocation) PayloadType() uint16               { return DeviceStateLocationType }
func (p *DeviceStateLocation) Size() int                         { return 56 }
func (p *DeviceStateLocation) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateLocation) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceGetGroup struct{}

func (p *DeviceGetGroup) PayloadType() uint16               { return DeviceGetGroupType }
func (p *DeviceGetGroup) Size() int                         { return 0 }
func (p *DeviceGetGroup) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *DeviceGetGroup) UnmarshalBinary(data []byte) error { return nil }

// DeviceSetGroup updates the device group with the same updated_at
// discipline as SetLocation.
type DeviceSetGroup struct {
	Group     [16]byte
	Label     [32]byte
	UpdatedAt uint64
}

func (p *DeviceSetGroup) PayloadType() uint16               { return DeviceSetGroupType }
func (p *DeviceSetGroup) Size() int                         { return 56 }
func (p *DeviceSetGroup) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceSetGroup) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceStateGroup struct {
	Group     [16]byte
	Label     [32]byte
	UpdatedAt uint64
}

func (p *DeviceStateGroup) PayloadType() uint16               { return DeviceStateGroupType }
func (p *DeviceStateGroup) Size() int                         { return 56 }
func (p *DeviceStateGroup) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateGroup) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// DeviceEchoRequest carries 64 bytes echoed back verbatim in EchoResponse.
type DeviceEchoRequest struct {
	Payload [64]byte
}

func (p *DeviceEchoRequest) PayloadType() uint16               { return DeviceEchoRequestType }
func (p *DeviceEchoRequest) Size() int                         { return 64 }
func (p *DeviceEchoRequest) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceEchoRequest) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type DeviceEchoResponse struct {
	Payload [64]byte
}

func (p *DeviceEchoResponse) PayloadType() uint16               { return DeviceEchoResponseType }
func (p *DeviceEchoResponse) Size() int                         { return 64 }
func (p *DeviceEchoResponse) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceEchoResponse) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// DeviceStateUnhandled is the reply to a request the device refused to
// handle; it carries the refused packet type.
type DeviceStateUnhandled struct {
	UnhandledType uint16
}

func (p *DeviceStateUnhandled) PayloadType() uint16               { return DeviceStateUnhandledType }
func (p *DeviceStateUnhandled) Size() int                         { return 2 }
func (p *DeviceStateUnhandled) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *DeviceStateUnhandled) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }
