package auth

import (
	"time"

	"com.martdev.kitchenrack/internal/auth/jwt"
)

type Authenticator interface {
	GenerateToken(claims jwt.UserClaims, ttl time.Duration) (string, error)
	ValidateToken(token string) (*jwt.UserClaims, error)
	DecodeToken(token string) (*jwt.UserClaims, error)
}
