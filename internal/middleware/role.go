package middleware

import (
	"net/http"

	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to users holding one of the given roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Error(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}
