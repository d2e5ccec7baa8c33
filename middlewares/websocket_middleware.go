package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/utils"
)

// WebSocketAuthMiddleware -> browser tidak bisa kirim header saat upgrade, token lewat ?token=
func WebSocketAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ctxRole, claims.Role)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}
