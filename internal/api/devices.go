package api

import (
	"fmt"
	"net/http"

	"github.com/Djelibeybi/lifx-emulator/pkg/devices"
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
	"github.com/Djelibeybi/lifx-emulator/pkg/products"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
)

// DeviceInfo is the management view of a device.
type DeviceInfo struct {
	Serial       string `json:"serial"`
	ProductID    uint32 `json:"product_id"`
	ProductName  string `json:"product_name"`
	RegistryName string `json:"registry_name"`
	Type         string `json:"type"`
	Label        string `json:"label"`
	PowerLevel   uint16 `json:"power_level"`

	Color *packets.LightHsbk `json:"color,omitempty"`

	Capabilities products.Capabilities `json:"capabilities"`

	ZoneCount  int `json:"zone_count,omitempty"`
	TileCount  int `json:"tile_count,omitempty"`
	TileWidth  int `json:"tile_width,omitempty"`
	TileHeight int `json:"tile_height,omitempty"`

	Location string `json:"location,omitempty"`
	Group    string `json:"group,omitempty"`
	Port     uint32 `json:"port"`
}

func deviceInfo(d *devices.Device) DeviceInfo {
	var info DeviceInfo
	d.Inspect(func(s *devices.State) {
		info = DeviceInfo{
			Serial:       s.Serial.String(),
			ProductID:    s.Product.PID,
			ProductName:  s.Product.Name,
			RegistryName: products.RegistryName(s.Product.PID),
			Type:         s.TypeName(),
			Label:        s.Label,
			PowerLevel:   s.PowerLevel,
			Capabilities: s.Product.Features,
			ZoneCount:    s.ZoneCount,
			TileCount:    s.TileCount,
			TileWidth:    s.TileWidth,
			TileHeight:   s.TileHeight,
			Location:     s.LocationLabel,
			Group:        s.GroupLabel,
			Port:         s.Port,
		}
		if s.HasColorState() {
			color := s.Color
			info.Color = &color
		}
	})
	return info
}

func (a *API) listDevices(c *gin.Context) {
	all := a.server.GetAllDevices()
	infos := make([]DeviceInfo, 0, len(all))
	for _, d := range all {
		infos = append(infos, deviceInfo(d))
	}
	c.JSON(http.StatusOK, gin.H{"devices": infos, "count": len(infos)})
}

// DeviceCreateRequest creates a device by product id. The serial is
// generated when omitted.
type DeviceCreateRequest struct {
	ProductID  uint32 `json:"product_id" binding:"required"`
	Serial     string `json:"serial"`
	Label      string `json:"label"`
	ZoneCount  int    `json:"zone_count"`
	TileCount  int    `json:"tile_count"`
	TileWidth  int    `json:"tile_width"`
	TileHeight int    `json:"tile_height"`
}

func (a *API) createDevice(c *gin.Context) {
	var req DeviceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.NotValidf("request body: %v", err))
		return
	}

	serial := req.Serial
	if serial == "" {
		serial = a.nextFreeSerial()
	}

	opts := []devices.Option{devices.WithLabel(req.Label)}
	if req.ZoneCount > 0 {
		opts = append(opts, devices.WithZoneCount(req.ZoneCount))
	}
	if req.TileCount > 0 || req.TileWidth > 0 || req.TileHeight > 0 {
		opts = append(opts, devices.WithTileLayout(req.TileCount, req.TileWidth, req.TileHeight))
	}

	d, err := devices.NewDevice(req.ProductID, serial, opts...)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := a.server.AddDevice(d); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, deviceInfo(d))
}

func (a *API) getDevice(c *gin.Context) {
	d := a.server.GetDevice(c.Param("serial"))
	if d == nil {
		abortWithError(c, errors.NotFoundf("device %s", c.Param("serial")))
		return
	}
	c.JSON(http.StatusOK, deviceInfo(d))
}

func (a *API) deleteDevice(c *gin.Context) {
	if err := a.server.RemoveDevice(c.Param("serial")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeviceStateUpdate patches mutable state, subject to capability checks.
type DeviceStateUpdate struct {
	Label              *string              `json:"label"`
	PowerLevel         *uint16              `json:"power_level"`
	Color              *packets.LightHsbk   `json:"color"`
	ZoneColors         []packets.LightHsbk  `json:"zone_colors"`
	TileColors         [][]packets.LightHsbk `json:"tile_colors"`
	InfraredBrightness *uint16              `json:"infrared_brightness"`
}

func (a *API) updateDeviceState(c *gin.Context) {
	d := a.server.GetDevice(c.Param("serial"))
	if d == nil {
		abortWithError(c, errors.NotFoundf("device %s", c.Param("serial")))
		return
	}

	var req DeviceStateUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.NotValidf("request body: %v", err))
		return
	}

	if req.PowerLevel != nil && *req.PowerLevel != devices.PowerOff && *req.PowerLevel != devices.PowerOn {
		abortWithError(c, errors.NotValidf("power_level %d (must be 0 or 65535)", *req.PowerLevel))
		return
	}

	var capErr error
	d.Inspect(func(s *devices.State) {
		switch {
		case req.Color != nil && !s.HasColorState():
			capErr = errors.NotValidf("device %s has no color support", s.Serial)
		case req.ZoneColors != nil && !s.Product.Features.Multizone:
			capErr = errors.NotValidf("device %s has no multizone support", s.Serial)
		case req.TileColors != nil && !s.Product.Features.Matrix:
			capErr = errors.NotValidf("device %s has no matrix support", s.Serial)
		case req.InfraredBrightness != nil && !s.Product.Features.Infrared:
			capErr = errors.NotValidf("device %s has no infrared support", s.Serial)
		}
	})
	if capErr != nil {
		abortWithError(c, capErr)
		return
	}

	if req.Label != nil {
		d.Update(packets.DeviceSetLabelType, func(s *devices.State) { s.Label = *req.Label })
	}
	if req.PowerLevel != nil {
		d.Update(packets.DeviceSetPowerType, func(s *devices.State) { s.PowerLevel = *req.PowerLevel })
	}
	if req.Color != nil {
		d.Update(packets.LightSetColorType, func(s *devices.State) {
			s.Color = *req.Color
			s.Color.Kelvin = s.ClampKelvin(req.Color.Kelvin)
		})
	}
	if req.ZoneColors != nil {
		d.Update(packets.MultiZoneSetExtendedColorZonesType, func(s *devices.State) {
			for i, color := range req.ZoneColors {
				if i >= s.ZoneCount {
					break
				}
				color.Kelvin = s.ClampKelvin(color.Kelvin)
				s.ZoneColors[i] = color
			}
		})
	}
	if req.TileColors != nil {
		d.Update(packets.TileSet64Type, func(s *devices.State) {
			for i, fb := range req.TileColors {
				if i >= s.TileCount {
					break
				}
				for j, color := range fb {
					if j >= len(s.Tiles[i]) {
						break
					}
					color.Kelvin = s.ClampKelvin(color.Kelvin)
					s.Tiles[i][j] = color
				}
			}
		})
	}
	if req.InfraredBrightness != nil {
		d.Update(packets.LightSetInfraredType, func(s *devices.State) { s.InfraredBrightness = *req.InfraredBrightness })
	}

	c.JSON(http.StatusOK, deviceInfo(d))
}

// ProductView is one row of the products listing.
type ProductView struct {
	PID          uint32                `json:"pid"`
	Name         string                `json:"name"`
	RegistryName string                `json:"registry_name"`
	Capabilities products.Capabilities `json:"capabilities"`
	MinKelvin    uint16                `json:"min_kelvin,omitempty"`
	MaxKelvin    uint16                `json:"max_kelvin,omitempty"`
}

func (a *API) listProducts(c *gin.Context) {
	all := products.All()
	views := make([]ProductView, 0, len(all))
	for _, p := range all {
		views = append(views, ProductView{
			PID:          p.PID,
			Name:         p.Name,
			RegistryName: products.RegistryName(p.PID),
			Capabilities: p.Features,
			MinKelvin:    p.MinKelvin,
			MaxKelvin:    p.MaxKelvin,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "count": len(views)})
}

// nextFreeSerial generates the first unused serial in the default prefix.
func (a *API) nextFreeSerial() string {
	for i := 1; ; i++ {
		serial := fmt.Sprintf("d073d5%06x", i)
		if a.server.GetDevice(serial) == nil {
			return serial
		}
	}
}
