package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the signature checks out but the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers signature mismatches, malformed tokens and wrong signing methods.
	ErrTokenInvalid = errors.New("invalid token")
)

// UserClaims is the identity embedded in every access and refresh token.
type UserClaims struct {
	UserID   int64  `json:"id"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTAuthenticator struct {
	secret string
	iss    string
}

func NewJWTAuthenticator(secret, iss string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret must not be empty")
	}
	if iss == "" {
		return nil, fmt.Errorf("jwt: issuer must not be empty")
	}
	return &JWTAuthenticator{
		secret: secret,
		iss:    iss,
	}, nil
}

// GenerateToken signs claims with issued-at now and expiry now+ttl.
func (j *JWTAuthenticator) GenerateToken(claims UserClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    j.iss,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken checks the signature and expiry. Expiry failure is surfaced as
// ErrTokenExpired so callers can decide whether a refresh flow makes sense.
func (j *JWTAuthenticator) ValidateToken(token string) (*UserClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &UserClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(j.secret), nil
	}, jwt.WithExpirationRequired(),
		jwt.WithIssuer(j.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*UserClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// DecodeToken extracts claims WITHOUT checking the signature. Only call this on
// a token whose signature was already verified in the same operation (the
// refresh flow validates first, then decodes). Never use it as a shortcut.
func (j *JWTAuthenticator) DecodeToken(token string) (*UserClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &UserClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*UserClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
