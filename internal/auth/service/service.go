// Package service implements credential verification, registration, and
// token issuance for the platform.
//
// Tokens are stateless: logout is acknowledged but does not invalidate the
// issued token server-side. A leaked token therefore remains valid until its
// natural expiry; the short default TTL bounds that window. This is a known
// limitation of the design, not a contract.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"talenthub/internal/auth/models"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/platform/tracer"
)

// UserStore defines the persistence interface for user data.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyExists on duplicate email.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs access tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	TTL() time.Duration
}

// Service owns registration, login, and profile operations.
type Service struct {
	users   UserStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the auth service. All three dependencies are required.
func New(users UserStore, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}

	svc := &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc, nil
}
