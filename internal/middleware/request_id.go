package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the context key for the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader is the HTTP header name for the request ID
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 64
)

// RequestID propagates the caller's X-Request-ID when it is well formed and
// generates a UUID otherwise. The ID is stored in the context and echoed in
// the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reuse the upstream proxy's ID when one was sent
		requestID := c.GetHeader(RequestIDHeader)

		// Anything missing, oversized or carrying odd characters is replaced
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		// Store in Gin context for the logger middleware and handlers
		c.Set(RequestIDKey, requestID)

		// Echo back to the client
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// validRequestID accepts short IDs made of letters, digits, '-', '_' and '.'.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// GetRequestID retrieves the request ID from the Gin context.
// Returns an empty string if not found.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
