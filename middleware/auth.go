package middleware

import (
	"strings"

	"aiva/constants"
	"aiva/response"
	"aiva/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards every session-protected route. The session token
// comes from the access_token cookie, with Authorization: Bearer as a
// fallback for non-browser clients.
func AuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := services.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if sessions.IsRevoked(c.Request.Context(), claims.Id) {
			response.Unauthorized(c, "Session has been logged out")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserInfo.UserId)
		c.Set("sessionID", claims.Id)
		c.Set("sessionExp", claims.ExpiresAt)
		c.Next()
	}
}

// UserID pulls the authenticated user id out of the request context
func UserID(c *gin.Context) uint {
	v, _ := c.Get("userID")
	id, _ := v.(uint)
	return id
}
