package history

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	httperr "github.com/projecteax/mozgnamaxa/internal/core/errors"
	"github.com/projecteax/mozgnamaxa/internal/identity"
)

// Handler exposes the cache over HTTP for the UI's navigation gating.
type Handler struct {
	cache    *Cache
	identity identity.Provider
}

func NewHandler(cache *Cache, ident identity.Provider) *Handler {
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	return &Handler{cache: cache, identity: ident}
}

type queryResponse struct {
	Completed bool   `json:"completed"`
	State     string `json:"state"`
}

type refreshBody struct {
	Season string `json:"season"`
}

// RegisterRoutes registers the history routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/completions/:season/:game_id", h.HandleQuery)
	r.POST("/v1/history/refresh", h.HandleRefresh)
}

// HandleQuery handles GET /v1/completions/:season/:game_id
func (h *Handler) HandleQuery(c *gin.Context) {
	season, err := aggregation.ParseSeason(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownSeasonError,
			Message:   "Unknown season",
			Details:   err.Error(),
		})
		return
	}
	gameID := c.Param("game_id")

	learnerID, ok := h.identity.CurrentLearnerID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, queryResponse{Completed: false, State: StateUninitialized.String()})
		return
	}

	completed := h.cache.Query(learnerID, gameID, season)
	state := StateUninitialized
	if snap, found := h.cache.Snapshot(Key{LearnerID: learnerID, GameID: gameID, Season: season}); found {
		state = snap.State
	}
	c.JSON(http.StatusOK, queryResponse{Completed: completed, State: state.String()})
}

// HandleRefresh handles POST /v1/history/refresh, sent by the UI when the signed-in
// learner or the selected season changes.
func (h *Handler) HandleRefresh(c *gin.Context) {
	learnerID, ok := h.identity.CurrentLearnerID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"refreshed": 0})
		return
	}

	var body refreshBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid JSON body",
				Details:   err.Error(),
			})
			return
		}
	}

	var season aggregation.Season
	if body.Season != "" {
		parsed, err := aggregation.ParseSeason(body.Season)
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnknownSeasonError,
				Message:   "Unknown season",
				Details:   err.Error(),
			})
			return
		}
		season = parsed
	}

	c.JSON(http.StatusAccepted, gin.H{"refreshed": h.cache.Refresh(learnerID, season)})
}
