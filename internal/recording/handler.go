package recording

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	httperr "github.com/projecteax/mozgnamaxa/internal/core/errors"
	"github.com/shopspring/decimal"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body"
	msgNoIdentity       = "No learner identity on request"
	msgProfileFailed    = "Failed to ensure profile"
	msgBodyTooLarge     = "Request body exceeds maximum allowed size"
	msgUnexpectedFailed = "Failed to record completion"
)

// recordBody is the POST /v1/completions payload. The learner comes from the identity header.
type recordBody struct {
	GameID           string           `json:"game_id"`
	Season           string           `json:"season"`
	CompletionTimeMs *decimal.Decimal `json:"completion_time_ms,omitempty"`
	Score            *decimal.Decimal `json:"score,omitempty"`
}

type profileBody struct {
	DisplayName string `json:"display_name"`
}

type recordResponse struct {
	Recorded bool   `json:"recorded"`
	Reason   Reason `json:"reason,omitempty"`
}

// recordingError carries the structured HTTP error shape from a helper back to the handler.
type recordingError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *recordingError) Error() string {
	return e.message
}

// RecordHandler handles POST /v1/completions.
func (s *Service) RecordHandler(c *gin.Context) {
	var body recordBody
	if err := s.bindBody(c, &body); err != nil {
		writeError(c, err)
		return
	}

	learnerID, _ := s.identity.CurrentLearnerID(c.Request.Context())
	outcome, err := s.Record(c.Request.Context(), RecordRequest{
		LearnerID:        learnerID,
		GameID:           body.GameID,
		Season:           aggregation.Season(body.Season),
		CompletionTimeMs: body.CompletionTimeMs,
		Score:            body.Score,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCompletion) {
			errorType := httperr.HttpInvalidCompletionError
			if errors.Is(err, aggregation.ErrUnknownSeason) {
				errorType = httperr.HttpUnknownSeasonError
			}
			writeError(c, &recordingError{
				statusCode: http.StatusBadRequest,
				errorType:  errorType,
				message:    err.Error(),
			})
			return
		}
		slog.Error("[Recorder] Unexpected record failure", "error", err)
		writeError(c, &recordingError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgUnexpectedFailed,
		})
		return
	}

	status := http.StatusOK
	if outcome.Reason == ReasonStoreUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, recordResponse{Recorded: outcome.Recorded, Reason: outcome.Reason})
}

// EnsureProfileHandler handles PUT /v1/profile.
func (s *Service) EnsureProfileHandler(c *gin.Context) {
	learnerID, ok := s.identity.CurrentLearnerID(c.Request.Context())
	if !ok {
		writeError(c, &recordingError{
			statusCode: http.StatusUnauthorized,
			errorType:  httperr.HttpNoIdentityError,
			message:    msgNoIdentity,
		})
		return
	}

	var body profileBody
	if c.Request.ContentLength != 0 {
		if err := s.bindBody(c, &body); err != nil {
			writeError(c, err)
			return
		}
	}

	profile, err := s.EnsureProfile(c.Request.Context(), learnerID, body.DisplayName)
	if err != nil {
		slog.Error("[Recorder] Failed to ensure profile", "error", err, "learner_id", learnerID)
		writeError(c, &recordingError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgProfileFailed,
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// bindBody reads a size-limited JSON body into dst.
func (s *Service) bindBody(c *gin.Context, dst interface{}) *recordingError {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return &recordingError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return &recordingError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgBodyTooLarge,
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &recordingError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return nil
}

// writeError serializes a recordingError as the JSON HTTP response.
func writeError(c *gin.Context, err *recordingError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
