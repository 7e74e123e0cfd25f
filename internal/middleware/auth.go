package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"book-talk-api/internal/auth"
	"book-talk-api/internal/response"
)

const userIDKey = "user_id"

// Auth returns a middleware that requires a valid Bearer access token
func Auth(tokenManager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "인증이 필요합니다.")
			c.Abort()
			return
		}

		userID, err := tokenManager.ParseUserID(tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "유효하지 않거나 만료된 토큰입니다.")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the user id when a valid token is present but lets
// anonymous requests through. Used on read endpoints that personalize
// responses (bookmark and like state) for signed-in users.
func OptionalAuth(tokenManager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := tokenManager.ParseUserID(tokenString); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, or zero when anonymous
func UserIDFromContext(c *gin.Context) uint {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0
	}
	userID, ok := value.(uint)
	if !ok {
		return 0
	}
	return userID
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
