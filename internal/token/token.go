// Package token issues and verifies the signed session tokens carried in
// role-scoped cookies. Tokens are stateless: validity is determined by
// signature and expiry alone, so sessions cannot be revoked short of
// rotating the signing secret.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is how long an issued token stays valid.
const TTL = 7 * 24 * time.Hour

var (
	// ErrExpired indicates a structurally valid token past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrMalformed indicates a token with a bad signature or structure.
	ErrMalformed = errors.New("invalid token")
)

// Service signs and verifies session tokens with a process-wide secret.
type Service struct {
	secret []byte
	now    func() time.Time
}

// NewService creates a token service. The secret is required configuration;
// config.Load refuses to start the process without it.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), now: time.Now}
}

// Issue produces a signed token embedding the principal id, expiring
// TTL from now.
func (s *Service) Issue(principalID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   principalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of raw and returns the embedded
// principal id. It is pure and side-effect-free.
func (s *Service) Verify(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformed
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrMalformed
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
