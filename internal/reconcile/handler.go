package reconcile

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/projecteax/mozgnamaxa/internal/core/errors"
)

// RegisterRoutes registers the admin drift routes on the given router.
func (a *Auditor) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/admin/drift", a.HandleDrift)
}

// HandleDrift handles GET /v1/admin/drift. It returns the latest report, running an
// audit first when none exists yet or when ?refresh=true is passed.
func (a *Auditor) HandleDrift(c *gin.Context) {
	report := a.Latest()
	if report == nil || c.Query("refresh") == "true" {
		var err error
		report, err = a.Audit(c.Request.Context())
		if err != nil {
			slog.Error("[Auditor] On-demand audit failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailableError,
				Message:   "Failed to audit completion log",
				Details:   err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, report)
}
