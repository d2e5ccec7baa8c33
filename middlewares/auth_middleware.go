package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	ctxUsername = "username"
	ctxRole     = "role"
	ctxToken    = "token"
)

var errUnauthorized = errors.New("admin credentials required")

// AdminAuth menerima HTTP Basic (username + password admin dari config)
// atau Bearer JWT hasil POST /auth/login.
func AdminAuth(auth config.Auth) gin.HandlerFunc {
	secret := []byte(auth.JWTSecret)
	hash := []byte(auth.AdminPasswordHash)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		switch {
		case strings.HasPrefix(header, "Bearer "):
			tokenString := strings.TrimPrefix(header, "Bearer ")
			claims, err := utils.ParseToken(tokenString, secret)
			if err != nil {
				utils.AbortWithError(c, http.StatusUnauthorized, err)
				return
			}
			if claims.Role != utils.RoleAdmin {
				utils.AbortWithError(c, http.StatusForbidden, errors.New("admin access required"))
				return
			}
			c.Set(ctxUsername, claims.Username)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxToken, tokenString)

		case strings.HasPrefix(header, "Basic "):
			username, password, ok := c.Request.BasicAuth()
			if !ok || username != auth.AdminUsername ||
				bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				c.Header("WWW-Authenticate", `Basic realm="restaurant"`)
				utils.AbortWithError(c, http.StatusUnauthorized, errors.New("invalid admin credentials"))
				return
			}
			c.Set(ctxUsername, username)
			c.Set(ctxRole, utils.RoleAdmin)

		default:
			c.Header("WWW-Authenticate", `Basic realm="restaurant"`)
			utils.AbortWithError(c, http.StatusUnauthorized, errUnauthorized)
			return
		}

		c.Next()
	}
}

// AdminForWrites -> GET/HEAD/OPTIONS lolos, method lain lewat AdminAuth.
// Dipakai di group yang mencampur endpoint publik dan admin.
func AdminForWrites(auth config.Auth) gin.HandlerFunc {
	gate := AdminAuth(auth)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			gate(c)
		}
	}
}
