// Package auth is responsible for authentication: user registration, login,
// token issuance and verification, the request-annotation middleware and the
// per-handler guard.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/resourcebox-go/config"
)

// bearerPrefix is stripped from incoming tokens when present. Verification
// accepts tokens with or without it.
const bearerPrefix = "Bearer "

// Claims defines the JWT payload: the username plus the registered claims
// (exp, iat).
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// The signing secret is process-wide configuration, loaded once and never
// mutated.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenDuration,
	}
}

// Issue produces a signed token embedding the username, valid for the
// configured duration (48 hours by default).
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token string, stripping an optional
// "Bearer " prefix first. Malformed input, a bad signature and an expired
// token are all reported as an error, never as a panic.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	raw = strings.TrimPrefix(raw, bearerPrefix)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.Username == "" {
		return nil, errors.New("username claim is missing")
	}

	return claims, nil
}
