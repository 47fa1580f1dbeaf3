package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrMissingParameter = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 422 Unprocessable Entity
	ErrDatasetSchema   = New(http.StatusUnprocessableEntity, "DATASET_SCHEMA_INVALID", "Dataset file is missing required columns")
	ErrDatasetEncoding = New(http.StatusUnprocessableEntity, "DATASET_ENCODING_UNSUPPORTED", "Dataset file could not be decoded with any supported encoding")
	ErrDatasetEmpty    = New(http.StatusUnprocessableEntity, "DATASET_EMPTY", "Dataset file has no rows")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrFileSystem     = New(http.StatusInternalServerError, "FILESYSTEM_ERROR", "File system error")

	// 503 Service Unavailable
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error for a specific field
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed",
		[]ValidationError{{Field: field, Message: message}})
}

// DatasetSchemaError creates a schema error carrying the missing columns
func DatasetSchemaError(missing []string) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "DATASET_SCHEMA_INVALID",
		"Dataset file is missing required columns", map[string]interface{}{"missing_columns": missing})
}

// DatasetEncodingError creates an encoding error carrying the attempted decoders
func DatasetEncodingError(attempted []string, cause error) *APIError {
	details := map[string]interface{}{"attempted_encodings": attempted}
	if cause != nil {
		details["cause"] = cause.Error()
	}
	return NewWithDetails(http.StatusUnprocessableEntity, "DATASET_ENCODING_UNSUPPORTED",
		"Dataset file could not be decoded with any supported encoding", details)
}
