package api

import (
	"net/http"

	"github.com/Djelibeybi/lifx-emulator/pkg/scenarios"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
)

var validScopes = map[string]bool{
	scenarios.ScopeDevice:   true,
	scenarios.ScopeType:     true,
	scenarios.ScopeLocation: true,
	scenarios.ScopeGroup:    true,
}

// invalidateAndPersist fulfils the management contract: every scenario
// mutation is followed by a cache-invalidation broadcast and the
// persistence hook.
func (a *API) invalidateAndPersist(c *gin.Context) {
	a.server.InvalidateAllScenarioCaches()
	a.server.PersistScenarios(c.Request.Context())
}

func (a *API) listScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.ScenarioManager().Snapshot())
}

func (a *API) getGlobalScenario(c *gin.Context) {
	cfg := a.server.ScenarioManager().GetGlobal()
	if cfg == nil {
		abortWithError(c, errors.NotFoundf("global scenario"))
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (a *API) setGlobalScenario(c *gin.Context) {
	var cfg scenarios.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		abortWithError(c, errors.NotValidf("scenario body: %v", err))
		return
	}

	a.server.ScenarioManager().SetGlobal(&cfg)
	a.invalidateAndPersist(c)
	c.JSON(http.StatusOK, &cfg)
}

func (a *API) clearGlobalScenario(c *gin.Context) {
	if !a.server.ScenarioManager().ClearGlobal() {
		abortWithError(c, errors.NotFoundf("global scenario"))
		return
	}
	a.invalidateAndPersist(c)
	c.Status(http.StatusNoContent)
}

func (a *API) getScopedScenario(c *gin.Context) {
	scope, id := c.Param("scope"), c.Param("id")
	if !validScopes[scope] {
		abortWithError(c, errors.NotValidf("scenario scope %q", scope))
		return
	}

	cfg := a.server.ScenarioManager().Get(scope, id)
	if cfg == nil {
		abortWithError(c, errors.NotFoundf("%s scenario for %s", scope, id))
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (a *API) setScopedScenario(c *gin.Context) {
	scope, id := c.Param("scope"), c.Param("id")
	if !validScopes[scope] {
		abortWithError(c, errors.NotValidf("scenario scope %q", scope))
		return
	}
	if scope == scenarios.ScopeDevice && !isValidSerial(id) {
		abortWithError(c, errors.NotValidf("device serial %q", id))
		return
	}

	var cfg scenarios.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		abortWithError(c, errors.NotValidf("scenario body: %v", err))
		return
	}

	a.server.ScenarioManager().Set(scope, id, &cfg)
	a.invalidateAndPersist(c)
	c.JSON(http.StatusOK, &cfg)
}

func (a *API) deleteScopedScenario(c *gin.Context) {
	scope, id := c.Param("scope"), c.Param("id")
	if !validScopes[scope] {
		abortWithError(c, errors.NotValidf("scenario scope %q", scope))
		return
	}

	if !a.server.ScenarioManager().Delete(scope, id) {
		abortWithError(c, errors.NotFoundf("%s scenario for %s", scope, id))
		return
	}
	a.invalidateAndPersist(c)
	c.Status(http.StatusNoContent)
}

func isValidSerial(serial string) bool {
	if len(serial) != 12 {
		return false
	}
	for _, r := range serial {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
