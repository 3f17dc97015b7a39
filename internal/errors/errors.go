package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the "code" field of error bodies.
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

type codeInfo struct {
	status  int
	message string
}

var codes = map[string]codeInfo{
	ErrCodeUnauthorized:       {http.StatusUnauthorized, "Authentication required"},
	ErrCodeForbidden:          {http.StatusForbidden, "Access denied"},
	ErrCodeInvalidInput:       {http.StatusBadRequest, "Invalid request"},
	ErrCodeNotFound:           {http.StatusNotFound, "Resource not found"},
	ErrCodeConflict:           {http.StatusConflict, "Resource conflict"},
	ErrCodeInternalError:      {http.StatusInternalServerError, "Internal server error"},
	ErrCodeUpstream:           {http.StatusBadGateway, "Upstream service returned an unusable response"},
	ErrCodeServiceUnavailable: {http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New builds an APIError. An empty message falls back to the code's default.
func New(code, message string) *APIError {
	if message == "" {
		message = codes[code].message
	}
	return &APIError{Code: code, Message: message}
}

// StatusOf returns the HTTP status for code. Unknown codes map to 500.
func StatusOf(code string) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Abort writes err with the status of its code and stops the handler chain.
func Abort(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(StatusOf(err.Code), err)
}

func Unauthorized(c *gin.Context, message string) {
	Abort(c, New(ErrCodeUnauthorized, message))
}

func Forbidden(c *gin.Context, message string) {
	Abort(c, New(ErrCodeForbidden, message))
}

func NotFound(c *gin.Context, message string) {
	Abort(c, New(ErrCodeNotFound, message))
}

func BadRequest(c *gin.Context, message string) {
	Abort(c, New(ErrCodeInvalidInput, message))
}

// InvalidBody reports a request body that failed to decode or validate.
func InvalidBody(c *gin.Context, err error) {
	apiErr := New(ErrCodeInvalidInput, "Invalid request body")
	if err != nil {
		apiErr.Details = err.Error()
	}
	Abort(c, apiErr)
}

func Conflict(c *gin.Context, message string) {
	Abort(c, New(ErrCodeConflict, message))
}

func InternalError(c *gin.Context, message string) {
	Abort(c, New(ErrCodeInternalError, message))
}

func Upstream(c *gin.Context, message string) {
	Abort(c, New(ErrCodeUpstream, message))
}

func ServiceUnavailable(c *gin.Context, message string) {
	Abort(c, New(ErrCodeServiceUnavailable, message))
}
