package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/florenciacomuzzi/amp-report/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound           = "NOT_FOUND"
	ErrBadRequest         = "BAD_REQUEST"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrForbidden          = "FORBIDDEN"
	ErrConflict           = "CONFLICT"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrValidation         = "VALIDATION_ERROR"
	ErrDatabaseConnection = "DATABASE_CONNECTION_ERROR"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrUpstream           = "UPSTREAM_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

func respond(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: middleware.GetRequestID(c),
		},
	})
}

func warn(c *gin.Context, msg, message string, extra map[string]interface{}) {
	log := middleware.GetLogger(c)
	if log == nil {
		return
	}
	fields := map[string]interface{}{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
	}
	for k, v := range extra {
		fields[k] = v
	}
	log.Warn(msg, fields)
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	warn(c, "Resource not found", message, nil)
	respond(c, http.StatusNotFound, ErrNotFound, message, nil)
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	var extra map[string]interface{}
	if details != nil {
		extra = map[string]interface{}{"details": details}
	}
	warn(c, "Bad request", message, extra)
	respond(c, http.StatusBadRequest, ErrBadRequest, message, details)
}

// Unauthorized returns a 401 response for missing or invalid credentials.
func Unauthorized(c *gin.Context, message string) {
	warn(c, "Unauthorized", message, nil)
	respond(c, http.StatusUnauthorized, ErrUnauthorized, message, nil)
}

// Forbidden returns a 403 response when the caller does not own the resource.
func Forbidden(c *gin.Context, message string) {
	warn(c, "Forbidden", message, nil)
	respond(c, http.StatusForbidden, ErrForbidden, message, nil)
}

// Conflict returns a 409 response, e.g. for a duplicate email or profile.
func Conflict(c *gin.Context, message string) {
	warn(c, "Conflict", message, nil)
	respond(c, http.StatusConflict, ErrConflict, message, nil)
}

// ServiceUnavailable returns a 503 response for a disabled dependency.
func ServiceUnavailable(c *gin.Context, message string) {
	warn(c, "Service unavailable", message, nil)
	respond(c, http.StatusServiceUnavailable, ErrServiceUnavailable, message, nil)
}

// BadGateway returns a 502 response when an upstream API call fails.
// The upstream error is logged but not exposed to the client.
func BadGateway(c *gin.Context, message string, err error) {
	if log := middleware.GetLogger(c); log != nil {
		log.Error("Upstream request failed", err, map[string]interface{}{
			"message":    message,
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		})
	}
	respond(c, http.StatusBadGateway, ErrUpstream, message, nil)
}

// InternalServerError returns a 500 Internal Server Error response.
// The error is logged with full context; the client only sees message.
func InternalServerError(c *gin.Context, message string, err error) {
	if log := middleware.GetLogger(c); log != nil {
		log.Error("Internal server error", err, map[string]interface{}{
			"message":    message,
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
	}
	respond(c, http.StatusInternalServerError, ErrInternalServer, message, nil)
}

// ValidationError returns a 400 Bad Request error response with field-specific validation errors.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{}, len(validationErrors))
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}

	warn(c, "Validation error", "validation failed", map[string]interface{}{"fields": details})
	respond(c, http.StatusBadRequest, ErrValidation, "Validation failed for one or more fields", details)
}

// BindError renders the error returned by gin's ShouldBind* helpers: field
// validation failures become VALIDATION_ERROR, anything else (malformed JSON,
// wrong types) becomes BAD_REQUEST.
func BindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		ValidationError(c, validationErrors)
		return
	}
	BadRequest(c, "Invalid request body or parameters", map[string]interface{}{
		"error": err.Error(),
	})
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "len":
		return "Must have length of " + err.Param()
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lt":
		return "Must be less than " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "url":
		return "Must be a valid URL"
	case "uuid":
		return "Must be a valid UUID"
	case "dive":
		return "Contains an invalid entry"
	case "latitude":
		return "Must be a valid latitude"
	case "longitude":
		return "Must be a valid longitude"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
