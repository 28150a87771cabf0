package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpInvalidCompletionError = "invalid_completion"
	HttpUnknownSeasonError     = "unknown_season"
	HttpNoIdentityError        = "no_identity"
	HttpStoreUnavailableError  = "store_unavailable"
)

// ErrorResponse is the error response body for rejected requests.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
