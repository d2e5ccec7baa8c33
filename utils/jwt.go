package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin   = "admin"
	tokenIssuer = "RestaurantManager"
)

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrBlacklistedToken = errors.New("token has been revoked")
)

type CustomClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(username, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		ErrorLogger.Printf("Error generating token: %v", err)
		return "", err
	}
	return tokenString, nil
}

// ParseToken memvalidasi signature, expiry dan blacklist.
func ParseToken(tokenString string, secret []byte) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, ErrBlacklistedToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
