// Package service implements candidate profile management, including the
// profile completion score recomputed on every write.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"talenthub/internal/candidate/models"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

// Store defines the persistence interface for candidates.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyExists on duplicate email.
type Store interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	Update(ctx context.Context, candidate *models.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.Candidate, error)
	Count(ctx context.Context, search string) (int, error)
}

// Service owns candidate operations.
type Service struct {
	candidates Store
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
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

// New constructs the candidate service.
func New(candidates Store, opts ...Option) (*Service, error) {
	if candidates == nil {
		return nil, fmt.Errorf("candidate store is required")
	}
	svc := &Service{
		candidates: candidates,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// CreateCommand carries validated candidate creation input.
type CreateCommand struct {
	FirstName            string
	LastName             string
	Email                string
	PhoneNumber          string
	LinkedinURL          string
	GithubURL            string
	PortfolioURL         string
	CurrentTitle         string
	CurrentCompany       string
	YearsOfExperience    float64
	ExpectedSalaryMin    int
	ExpectedSalaryMax    int
	PreferredLocations   []string
	RemoteWorkPreference string
	Summary              string
}

// Create inserts a new candidate profile. Duplicate emails fail with a
// conflict; the completion score is computed before the insert.
func (s *Service) Create(ctx context.Context, cmd *CreateCommand) (*models.Candidate, error) {
	preference := cmd.RemoteWorkPreference
	if preference == "" {
		preference = models.RemoteWorkAny
	}

	now := s.now().UTC()
	candidate := &models.Candidate{
		ID:                   uuid.New(),
		FirstName:            cmd.FirstName,
		LastName:             cmd.LastName,
		Email:                cmd.Email,
		PhoneNumber:          cmd.PhoneNumber,
		LinkedinURL:          cmd.LinkedinURL,
		GithubURL:            cmd.GithubURL,
		PortfolioURL:         cmd.PortfolioURL,
		CurrentTitle:         cmd.CurrentTitle,
		CurrentCompany:       cmd.CurrentCompany,
		YearsOfExperience:    cmd.YearsOfExperience,
		ExpectedSalaryMin:    cmd.ExpectedSalaryMin,
		ExpectedSalaryMax:    cmd.ExpectedSalaryMax,
		PreferredLocations:   cmd.PreferredLocations,
		RemoteWorkPreference: preference,
		Summary:              cmd.Summary,
		AvailabilityStatus:   models.AvailabilityAvailable,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	candidate.ProfileCompletionScore = CompletionScore(candidate)

	if err := s.candidates.Create(ctx, candidate); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "candidate email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}

	s.metrics.IncrementCandidatesCreated()
	s.logger.InfoContext(ctx, "candidate_created",
		"event", "candidate_created",
		"log_type", "audit",
		"candidate_id", candidate.ID.String(),
	)
	return candidate, nil
}

// List returns one page of candidates, optionally filtered by a search term
// over name, email, title and company.
func (s *Service) List(ctx context.Context, search string, page pagination.Page) ([]*models.Candidate, pagination.Meta, error) {
	total, err := s.candidates.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	candidates, err := s.candidates.List(ctx, search, page.Offset(), page.Size)
	if err != nil {
		return nil, pagination.Meta{}, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return candidates, page.MetaFor(total), nil
}

// Get loads a candidate by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return candidate, nil
}

// UpdateCommand carries the mutable candidate fields. Pointer fields
// distinguish "leave unchanged" (nil) from explicit values so numeric fields
// can be cleared.
type UpdateCommand struct {
	FirstName            *string
	LastName             *string
	PhoneNumber          *string
	LinkedinURL          *string
	GithubURL            *string
	PortfolioURL         *string
	CurrentTitle         *string
	CurrentCompany       *string
	YearsOfExperience    *float64
	ExpectedSalaryMin    *int
	ExpectedSalaryMax    *int
	PreferredLocations   []string
	RemoteWorkPreference *string
	Summary              *string
	AvailabilityStatus   *string
}

// Update applies the set fields of cmd and recomputes the completion score.
// Email is immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd *UpdateCommand) (*models.Candidate, error) {
	candidate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&candidate.FirstName, cmd.FirstName)
	setString(&candidate.LastName, cmd.LastName)
	setString(&candidate.PhoneNumber, cmd.PhoneNumber)
	setString(&candidate.LinkedinURL, cmd.LinkedinURL)
	setString(&candidate.GithubURL, cmd.GithubURL)
	setString(&candidate.PortfolioURL, cmd.PortfolioURL)
	setString(&candidate.CurrentTitle, cmd.CurrentTitle)
	setString(&candidate.CurrentCompany, cmd.CurrentCompany)
	setString(&candidate.RemoteWorkPreference, cmd.RemoteWorkPreference)
	setString(&candidate.Summary, cmd.Summary)
	setString(&candidate.AvailabilityStatus, cmd.AvailabilityStatus)
	if cmd.YearsOfExperience != nil {
		candidate.YearsOfExperience = *cmd.YearsOfExperience
	}
	if cmd.ExpectedSalaryMin != nil {
		candidate.ExpectedSalaryMin = *cmd.ExpectedSalaryMin
	}
	if cmd.ExpectedSalaryMax != nil {
		candidate.ExpectedSalaryMax = *cmd.ExpectedSalaryMax
	}
	if cmd.PreferredLocations != nil {
		candidate.PreferredLocations = cmd.PreferredLocations
	}

	candidate.ProfileCompletionScore = CompletionScore(candidate)
	candidate.UpdatedAt = s.now().UTC()

	if err := s.candidates.Update(ctx, candidate); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
	return candidate, nil
}

// completionFields is the number of profile fields that count toward the
// completion score.
const completionFields = 15

// CompletionScore returns the percentage of scored profile fields that are
// filled, rounded to two decimals.
func CompletionScore(c *models.Candidate) float64 {
	completed := 0
	for _, filled := range []bool{
		c.FirstName != "",
		c.LastName != "",
		c.Email != "",
		c.PhoneNumber != "",
		c.CurrentTitle != "",
		c.CurrentCompany != "",
		c.YearsOfExperience != 0,
		c.Summary != "",
		c.LinkedinURL != "",
		c.GithubURL != "",
		c.PortfolioURL != "",
		c.ExpectedSalaryMin != 0,
		c.ExpectedSalaryMax != 0,
		len(c.PreferredLocations) > 0,
		c.RemoteWorkPreference != "",
	} {
		if filled {
			completed++
		}
	}
	score := float64(completed) / completionFields * 100
	return math.Round(score*100) / 100
}
