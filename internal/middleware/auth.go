package middleware

import (
	"net/http"
	"strings"

	"github.com/Karann1101/sahyadri-guardian/internal/models"
	"github.com/Karann1101/sahyadri-guardian/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey is the gin context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the session token and puts the current user into
// the gin context. The token is read from the auth-token cookie, with an
// Authorization: Bearer fallback for non-browser clients.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		if cookie, err := c.Cookie(util.AuthCookieName); err == nil {
			tokenStr = cookie
		}

		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusNotFound, "User not found")
			} else {
				util.ServerError(c, err)
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			util.Error(c, http.StatusUnauthorized, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser reads the authenticated user placed by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
