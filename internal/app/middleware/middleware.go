package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/auth"
)

// Define typed context keys
type contextKey string

const UserContextKey contextKey = "user"

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Trigger, HX-Current-URL, X-Page-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "HX-Trigger, HX-Redirect, HX-Refresh, HX-Reswap")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HTMX and Leaflet come from unpkg; map tiles and business images are remote.
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://unpkg.com; " +
			"style-src 'self' 'unsafe-inline' https://unpkg.com; " +
			"img-src 'self' data: https: http:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// OptionalAuthMiddleware sets user context if a valid auth cookie exists,
// but never blocks the request.
func OptionalAuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err == nil {
			c.Set(string(UserContextKey), &models.User{
				ID:    claims.UserID,
				Email: claims.Email,
			})
			c.Set("user_id", claims.UserID)
		}

		c.Next()
	}
}

// GetUserFromContext extracts user information from Gin context
func GetUserFromContext(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil
	}

	return userModel
}

// GetUserIDFromContext returns the logged in user id, empty for anonymous visitors.
func GetUserIDFromContext(c *gin.Context) string {
	if user := GetUserFromContext(c); user != nil {
		return user.ID
	}
	return ""
}
