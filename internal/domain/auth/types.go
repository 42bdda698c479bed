package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config drives token validation.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// Claims are extracted from the JWT token.
type Claims struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
