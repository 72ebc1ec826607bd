// Package token issues and validates the stateless bearer tokens that carry
// a subject identity between requests. Tokens are self-contained: a signature
// over {subject, issued-at, expiry} under a server-held secret, so validation
// needs no database lookup.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talenthub/internal/sentinel"
)

// Service signs and validates HS256 access tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock injects a clock, used by tests to exercise expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a token service. The signing key is process-wide
// configuration loaded once at startup; rotating it invalidates all
// outstanding tokens.
func New(signingKey string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given subject with an absolute expiry of
// now + TTL.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required: %w", sentinel.ErrInvalidInput)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry against the local clock and returns
// the embedded subject. Expired tokens fail with sentinel.ErrExpired; bad
// signatures and malformed payloads fail with sentinel.ErrInvalidToken.
func (s *Service) Validate(tokenString string) (string, error) {
	claims := new(jwt.RegisteredClaims)
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("token expired: %w", sentinel.ErrExpired)
		}
		return "", fmt.Errorf("token rejected: %w", sentinel.ErrInvalidToken)
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token rejected: %w", sentinel.ErrInvalidToken)
	}
	return claims.Subject, nil
}
