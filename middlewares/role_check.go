package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/utils"
)

// RequireRole -> role dari context (diisi middleware auth) harus salah satu dari roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ctxRole)
		if !exists {
			utils.AbortWithError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		utils.AbortWithError(c, http.StatusForbidden, fmt.Errorf("%v access required", roles))
	}
}
