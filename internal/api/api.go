// Package api is the HTTP management surface of the emulator. It mutates
// the device set and the scenario hierarchy through the server's
// management contract and reads activity through the event-bus observers;
// it never touches the packet path directly.
package api

import (
	"net/http"

	"github.com/Djelibeybi/lifx-emulator/pkg/server"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// API wires the management routes around a running server.
type API struct {
	server *server.Server
}

// New returns the management API for the given server.
func New(srv *server.Server) *API {
	return &API{server: srv}
}

// Router builds the gin engine with every management route mounted under
// /api.
func (a *API) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/devices", a.listDevices)
		api.POST("/devices", a.createDevice)
		api.GET("/devices/:serial", a.getDevice)
		api.DELETE("/devices/:serial", a.deleteDevice)
		api.PATCH("/devices/:serial/state", a.updateDeviceState)

		api.GET("/products", a.listProducts)

		api.GET("/scenarios", a.listScenarios)
		api.GET("/scenarios/global", a.getGlobalScenario)
		api.PUT("/scenarios/global", a.setGlobalScenario)
		api.DELETE("/scenarios/global", a.clearGlobalScenario)
		api.GET("/scenarios/:scope/:id", a.getScopedScenario)
		api.PUT("/scenarios/:scope/:id", a.setScopedScenario)
		api.DELETE("/scenarios/:scope/:id", a.deleteScopedScenario)

		api.GET("/stats", a.getStats)
		api.GET("/activity", a.getActivity)
	}

	return r
}

// Run serves the API until the listener fails or the process exits.
func (a *API) Run(addr string) error {
	log.WithField("addr", addr).Info("Management API listening")
	return a.Router().Run(addr)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// abortWithError maps typed control-plane failures onto HTTP status codes.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsAlreadyExists(err):
		status = http.StatusConflict
	case errors.IsNotValid(err):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func (a *API) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.GetStats())
}

func (a *API) getActivity(c *gin.Context) {
	events := a.server.GetRecentActivity()
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
