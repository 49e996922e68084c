package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope codes, one per HTTP failure class
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeMissingReference = "MISSING_REFERENCE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the body of every error response. Message carries the
// stable client-facing code such as "task-not-found".
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

func respond(c *gin.Context, status int, code, message, fallback string) {
	if message == "" {
		message = fallback
	}
	RespondWithError(c, status, NewAPIError(code, message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, "auth-missing")
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message, "auth-insufficient")
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message, "not-found")
}

// MissingReference sends a 404 for a referenced record that does not exist
func MissingReference(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeMissingReference, message, "missing-reference")
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "invalid-request")
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message, "conflict")
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, "internal-error")
}
