package packets

// Tile packet types (701–720).
const (
	TileGetDeviceChainType   uint16 = 701
	TileStateDeviceChainType uint16 = 702
	TileSetUserPositionType  uint16 = 703
	TileGet64Type            uint16 = 707
	TileState64Type          uint16 = 711
	TileSet64Type            uint16 = 715
)

// Chain and frame buffer limits.
const (
	TileChainMaxDevices = 16
	TileFrameZones      = 64
)

func init() {
	register(TileGetDeviceChainType, "GetDeviceChain", func() Payload { return &TileGetDeviceChain{} })
	register(TileStateDeviceChainType, "StateDeviceChain", func() Payload { return &TileStateDeviceChain{} })
	register(TileSetUserPositionType, "SetUserPosition", func() Payload { return &TileSetUserPosition{} })
	register(TileGet64Type, "Get64", func() Payload { return &TileGet64{} })
	register(TileState64Type, "State64", func() Payload { return &TileState64{} })
	register(TileSet64Type, "Set64", func() Payload { return &TileSet64{} })
}

type TileGetDeviceChain struct{}

func (p *TileGetDeviceChain) PayloadType() uint16               { return TileGetDeviceChainType }
func (p *TileGetDeviceChain) Size() int                         { return 0 }
func (p *TileGetDeviceChain) MarshalBinary() ([]byte, error)    { return nil, nil }
func (p *TileGetDeviceChain) UnmarshalBinary(data []byte) error { return nil }

// TileStateDeviceChain lists the metadata of every tile in the chain.
type TileStateDeviceChain struct {
	StartIndex       uint8
	TileDevices      [TileChainMaxDevices]TileDevice
	TileDevicesCount uint8
}

func (p *TileStateDeviceChain) PayloadType() uint16               { return TileStateDeviceChainType }
func (p *TileStateDeviceChain) Size() int                         { return 882 }
func (p *TileStateDeviceChain) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *TileStateDeviceChain) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

type TileSetUserPosition struct {
	TileIndex uint8
	Reserved6 [2]byte
	UserX     float32
	UserY     float32
}

func (p *TileSetUserPosition) PayloadType() uint16               { return TileSetUserPositionType }
func (p *TileSetUserPosition) Size() int                         { return 11 }
func (p *TileSetUserPosition) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *TileSetUserPosition) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// TileGet64 requests the frame buffer rect of Length tiles starting at
// TileIndex; the device answers one State64 per tile.
type TileGet64 struct {
	TileIndex uint8
	Length    uint8
	Rect      TileBufferRect
}

func (p *TileGet64) PayloadType() uint16               { return TileGet64Type }
func (p *TileGet64) Size() int                         { return 6 }
func (p *TileGet64) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *TileGet64) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// TileState64 carries up to 64 colors of one tile's frame buffer rect.
type TileState64 struct {
	TileIndex uint8
	Reserved6 uint8
	X         uint8
	Y         uint8
	Width     uint8
	Colors    [TileFrameZones]LightHsbk
}

func (p *TileState64) PayloadType() uint16               { return TileState64Type }
func (p *TileState64) Size() int                         { return 517 }
func (p *TileState64) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *TileState64) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }

// TileSet64 writes up to 64 colors into the rect of one tile's frame buffer.
type TileSet64 struct {
	TileIndex uint8
	Length    uint8
	Rect      TileBufferRect
	Duration  uint32
	Colors    [TileFrameZones]LightHsbk
}

func (p *TileSet64) PayloadType() uint16               { return TileSet64Type }
func (p *TileSet64) Size() int                         { return 522 }
func (p *TileSet64) MarshalBinary() ([]byte, error)    { return marshalFixed(p) }
func (p *TileSet64) UnmarshalBinary(data []byte) error { return unmarshalFixed(p, data) }
