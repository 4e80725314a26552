// Package auth issues and verifies the bearer tokens that bind an HTTP client
// to its server-side session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"harvest-market/internal/marketerrors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// Claims carried by a session token
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issuer signs and parses HS256 session tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer. A non-positive ttl means 24 hours.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sessionID on behalf of principalID
func (i *Issuer) Issue(sessionID, principalID string) (string, error) {
	now := i.now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its claims. Every failure is ErrNotAuthenticated.
func (i *Issuer) Parse(token string) (Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("auth: token expired: %w", marketerrors.ErrNotAuthenticated)
		}
		return Claims{}, fmt.Errorf("auth: %w: %w", marketerrors.ErrNotAuthenticated, err)
	}
	if !tkn.Valid || claims.SessionID == "" {
		return Claims{}, fmt.Errorf("auth: invalid token: %w", marketerrors.ErrNotAuthenticated)
	}
	return claims, nil
}
