// Package service implements user directory operations: the superuser-only
// account listing. Profile self-updates live with the auth service, which
// owns the account lifecycle.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"talenthub/internal/auth/models"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

// Store defines the read side of the user directory.
type Store interface {
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
}

// Service owns user directory queries.
type Service struct {
	users  Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs the user directory service.
func New(users Store, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	svc := &Service{users: users}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// List returns one page of accounts, ordered by creation time.
func (s *Service) List(ctx context.Context, page pagination.Page) ([]*models.User, pagination.Meta, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	users, err := s.users.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	return users, page.MetaFor(total), nil
}
