package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	Auth config.Auth
}

func NewAuthController(auth config.Auth) *AuthController {
	return &AuthController{Auth: auth}
}

// Login admin -> return JWT
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(ac.Auth.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(ac.Auth.AdminPasswordHash), []byte(input.Password))
	if !userOK || passErr != nil {
		utils.InfoLogger.Printf("Failed login attempt for %q from %s", input.Username, c.ClientIP())
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCred)
		return
	}

	token, err := utils.GenerateToken(input.Username, utils.RoleAdmin, []byte(ac.Auth.JWTSecret), ac.Auth.TokenTTL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for %s", input.Username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":      token,
		"token_type": "Bearer",
		"role":       utils.RoleAdmin,
		"expires_at": time.Now().Add(ac.Auth.TokenTTL).UTC().Format(time.RFC3339),
	})
}

// Logout -> bearer token masuk blacklist sampai expiry-nya
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		utils.RespondJSON(c, http.StatusOK, "Nothing to revoke for basic auth", nil)
		return
	}

	claims, err := utils.ParseToken(token, []byte(ac.Auth.JWTSecret))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	until := time.Now().Add(ac.Auth.TokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, until)

	utils.InfoLogger.Printf("Token revoked for %s", claims.Username)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
