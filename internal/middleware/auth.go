package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key for the authenticated user's ID.
const UserIDKey = "user_id"

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	VerifySubject(token string) (string, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the token subject under UserIDKey.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed bearer token")
			return
		}

		userID, err := verifier.VerifySubject(strings.TrimSpace(token))
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Warn("Rejected bearer token", map[string]interface{}{
					"path":  c.Request.URL.Path,
					"error": err.Error(),
				})
			}
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or "" on public routes.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
