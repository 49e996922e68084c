package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskgraph-api/internal/constants"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(constants.ContextKeyUsername).(string)

		if username == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}

	username, ok := value.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
