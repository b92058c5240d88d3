// Package credentials issues and verifies the bearer tokens that tie rating
// requests to a specific study session. A context holding a token for a
// session that has since been replaced or completed is rejected before it can
// touch the plan cursor.
package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session token is missing, malformed,
// expired, or signed with a different secret.
var ErrInvalidToken = errors.New("invalid session token")

// tokenLifetime bounds how long a single study session's token stays valid.
const tokenLifetime = 24 * time.Hour

// sessionClaims carries the session ID inside the signed token.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies session tokens with an HMAC secret.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer from the configured secret.
func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// Sign issues a token bound to the given session ID.
func (s *TokenSigner) Sign(sessionID string, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the session ID
// it was issued for.
func (s *TokenSigner) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &sessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}

	return claims.SessionID, nil
}
