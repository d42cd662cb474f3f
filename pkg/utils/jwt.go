package utils

import (
	"errors"
	"pos_backend/pkg/config"
	"pos_backend/pkg/models"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the custom JWT claims. The registered ID claim
// carries the session key tracked by the idle timer.
type TokenClaims struct {
	StaffID string      `json:"staffId"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionKey returns the key of the session the token belongs to
func (c *TokenClaims) SessionKey() string {
	return c.ID
}

// GenerateToken generates a JWT token for a signed-in staff member
func GenerateToken(staffID string, role models.Role, sessionKey string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionKey,
			Subject:   staffID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// VerifyToken verifies and parses a JWT token
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid && claims.StaffID != "" {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// TokenTTL parses JWT_EXPIRES_IN. Day counts like "7d" are accepted on top
// of Go durations; anything unreadable means 7 days.
func TokenTTL() time.Duration {
	const fallback = 7 * 24 * time.Hour

	expiresIn := strings.TrimSpace(config.AppConfig.JWTExpiresIn)
	if days, ok := strings.CutSuffix(expiresIn, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return fallback
	}
	if d, err := time.ParseDuration(expiresIn); err == nil && d > 0 {
		return d
	}
	return fallback
}
