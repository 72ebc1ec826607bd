// Package service implements company management: creation with owner
// membership, member-scoped listing, and the membership authorization gate.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	authModels "talenthub/internal/auth/models"
	"talenthub/internal/company/models"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

// Store defines the persistence interface for companies and memberships.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyExists on duplicate slug.
type Store interface {
	Create(ctx context.Context, company *models.Company, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	AddMember(ctx context.Context, companyID, userID uuid.UUID, role string) error
	IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Company, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service owns company operations.
type Service struct {
	companies Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
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

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the company service.
func New(companies Store, opts ...Option) (*Service, error) {
	if companies == nil {
		return nil, fmt.Errorf("company store is required")
	}
	svc := &Service{
		companies: companies,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// CreateCommand carries validated company creation input.
type CreateCommand struct {
	Name         string
	Slug         string
	Description  string
	Website      string
	Industry     string
	Size         string
	Headquarters string
	FoundedYear  int
}

// Create inserts a new company and records the creator as its owner. The slug
// defaults to a slugified name when absent; duplicates fail with a conflict.
func (s *Service) Create(ctx context.Context, creator *authModels.User, cmd *CreateCommand) (*models.Company, error) {
	slug := cmd.Slug
	if slug == "" {
		slug = Slugify(cmd.Name)
	}
	if slug == "" {
		return nil, dErrors.NewValidation("company request is invalid", dErrors.FieldError{
			Field: "slug", Message: "slug could not be derived from name", Code: "invalid",
		})
	}

	now := s.now().UTC()
	company := &models.Company{
		ID:           uuid.New(),
		Name:         cmd.Name,
		Slug:         slug,
		Description:  cmd.Description,
		Website:      cmd.Website,
		Industry:     cmd.Industry,
		Size:         cmd.Size,
		Headquarters: cmd.Headquarters,
		FoundedYear:  cmd.FoundedYear,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.companies.Create(ctx, company, creator.ID); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "company slug already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	s.metrics.IncrementCompaniesCreated()
	s.logger.InfoContext(ctx, "company_created",
		"event", "company_created",
		"log_type", "audit",
		"company_id", company.ID.String(),
		"owner_id", creator.ID.String(),
	)
	return company, nil
}

// ListMine returns one page of the companies the principal belongs to.
func (s *Service) ListMine(ctx context.Context, principal *authModels.User, page pagination.Page) ([]*models.Company, pagination.Meta, error) {
	total, err := s.companies.CountForUser(ctx, principal.ID)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	companies, err := s.companies.ListForUser(ctx, principal.ID, page.Offset(), page.Size)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return companies, page.MetaFor(total), nil
}

// Get loads a company after the membership gate: the principal must be a
// member unless they are a superuser. Missing companies fail before the gate
// so members get accurate not-found responses.
func (s *Service) Get(ctx context.Context, principal *authModels.User, id uuid.UUID) (*models.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	if err := s.Authorize(ctx, principal, id); err != nil {
		return nil, err
	}
	return company, nil
}

// Authorize checks that the principal may act on the company: superusers
// always pass, everyone else must be a member.
func (s *Service) Authorize(ctx context.Context, principal *authModels.User, companyID uuid.UUID) error {
	if principal.Superuser {
		return nil
	}
	member, err := s.companies.IsMember(ctx, companyID, principal.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	if !member {
		return dErrors.New(dErrors.CodeAuthorization, "not a member of this company")
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
