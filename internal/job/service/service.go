// Package service implements job posting management. Writes are gated on
// company membership; reads are open to any authenticated principal.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authModels "talenthub/internal/auth/models"
	"talenthub/internal/job/models"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

// Store defines the persistence interface for jobs.
// Error Contract: Find and Update return sentinel.ErrNotFound (wrapped) when
// the job does not exist.
type Store interface {
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, offset, limit int) ([]*models.Job, error)
	Count(ctx context.Context) (int, error)
}

// CompanyAuthorizer decides whether a principal may act for a company.
type CompanyAuthorizer interface {
	Authorize(ctx context.Context, principal *authModels.User, companyID uuid.UUID) error
}

// Service owns job operations.
type Service struct {
	jobs      Store
	companies CompanyAuthorizer
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

// New constructs the job service. Both the store and the authorizer are
// required.
func New(jobs Store, companies CompanyAuthorizer, opts ...Option) (*Service, error) {
	if jobs == nil {
		return nil, fmt.Errorf("job store is required")
	}
	if companies == nil {
		return nil, fmt.Errorf("company authorizer is required")
	}
	svc := &Service{
		jobs:      jobs,
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

// CreateCommand carries validated job creation input.
type CreateCommand struct {
	CompanyID      uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType string
	SalaryMin      int
	SalaryMax      int
	RemoteAllowed  bool
}

// Create posts a new job for a company the principal belongs to.
func (s *Service) Create(ctx context.Context, principal *authModels.User, cmd *CreateCommand) (*models.Job, error) {
	if err := s.companies.Authorize(ctx, principal, cmd.CompanyID); err != nil {
		return nil, err
	}

	employment := cmd.EmploymentType
	if employment == "" {
		employment = models.EmploymentFullTime
	}

	now := s.now().UTC()
	job := &models.Job{
		ID:             uuid.New(),
		CompanyID:      cmd.CompanyID,
		Title:          cmd.Title,
		Description:    cmd.Description,
		Location:       cmd.Location,
		EmploymentType: employment,
		SalaryMin:      cmd.SalaryMin,
		SalaryMax:      cmd.SalaryMax,
		RemoteAllowed:  cmd.RemoteAllowed,
		Status:         models.StatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	s.metrics.IncrementJobsCreated()
	s.logger.InfoContext(ctx, "job_created",
		"event", "job_created",
		"log_type", "audit",
		"job_id", job.ID.String(),
		"company_id", job.CompanyID.String(),
	)
	return job, nil
}

// List returns one page of job postings.
func (s *Service) List(ctx context.Context, page pagination.Page) ([]*models.Job, pagination.Meta, error) {
	total, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	jobs, err := s.jobs.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return jobs, page.MetaFor(total), nil
}

// Get loads a job by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "job not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return job, nil
}

// UpdateCommand carries the mutable job fields. Pointer fields distinguish
// "leave unchanged" (nil) from explicit values.
type UpdateCommand struct {
	Title          *string
	Description    *string
	Location       *string
	EmploymentType *string
	SalaryMin      *int
	SalaryMax      *int
	RemoteAllowed  *bool
	Status         *string
}

// Update applies the set fields of cmd. The principal must be a member of the
// job's company; the company binding itself never changes.
func (s *Service) Update(ctx context.Context, principal *authModels.User, id uuid.UUID, cmd *UpdateCommand) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.companies.Authorize(ctx, principal, job.CompanyID); err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		job.Title = *cmd.Title
	}
	if cmd.Description != nil {
		job.Description = *cmd.Description
	}
	if cmd.Location != nil {
		job.Location = *cmd.Location
	}
	if cmd.EmploymentType != nil {
		job.EmploymentType = *cmd.EmploymentType
	}
	if cmd.SalaryMin != nil {
		job.SalaryMin = *cmd.SalaryMin
	}
	if cmd.SalaryMax != nil {
		job.SalaryMax = *cmd.SalaryMax
	}
	if cmd.RemoteAllowed != nil {
		job.RemoteAllowed = *cmd.RemoteAllowed
	}
	if cmd.Status != nil {
		job.Status = *cmd.Status
	}
	job.UpdatedAt = s.now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "job not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return job, nil
}
