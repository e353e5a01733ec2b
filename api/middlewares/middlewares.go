package middlewares

import (
	"net/http"
	"os"
	"strings"

	"warbler/api/auth"
	"warbler/api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionAuthMiddleware resolves the acting user from the session cookie. The
// user row is reloaded on every request so the gate always sees current
// persisted state: a concurrently deleted account is logged out immediately.
func SessionAuthMiddleware(db *gorm.DB, sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.SessionCookie)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
			c.Abort()
			return
		}

		userID, err := sessions.Fetch(c.Request.Context(), cookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("id").First(&user, userID).Error; err != nil {
			// Stale session pointing at a vanished user.
			_ = sessions.Delete(c.Request.Context(), cookie)
			c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	allowedOrigins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, o := range allowedOrigins {
			if strings.TrimSpace(o) == origin && origin != "" {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, X-CSRF-Token, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// NoCacheMiddleware marks every response non-cacheable.
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}
