package projection

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/projecteax/mozgnamaxa/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/progress", s.HandleProgress)
}

// HandleProgress handles GET /v1/progress for the learner on the request.
func (s *Service) HandleProgress(c *gin.Context) {
	learnerID, _ := s.identity.CurrentLearnerID(c.Request.Context())

	resp, err := s.Progress(c.Request.Context(), learnerID)
	if err != nil {
		slog.Error("[Progress] Failed to load progress", "error", err, "learner_id", learnerID)
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStoreUnavailableError,
			Message:   "Failed to load progress",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
