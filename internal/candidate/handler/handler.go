// Package handler exposes the candidate endpoints: creation, searchable
// listing, retrieval and update.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talenthub/internal/candidate/models"
	"talenthub/internal/candidate/service"
	"talenthub/internal/platform/middleware"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
	"talenthub/pkg/platform/httputil"
)

// Service defines the candidate operations the handler needs.
type Service interface {
	Create(ctx context.Context, cmd *service.CreateCommand) (*models.Candidate, error)
	List(ctx context.Context, search string, page pagination.Page) ([]*models.Candidate, pagination.Meta, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, cmd *service.UpdateCommand) (*models.Candidate, error)
}

// Handler handles the /candidates route group.
type Handler struct {
	candidates Service
	logger     *slog.Logger
	principal  func(http.Handler) http.Handler
}

// New creates a candidate Handler. All routes run behind the principal middleware.
func New(candidates Service, logger *slog.Logger, principal func(http.Handler) http.Handler) *Handler {
	return &Handler{
		candidates: candidates,
		logger:     logger,
		principal:  principal,
	}
}

// Register registers the candidate routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/candidates", func(r chi.Router) {
		r.Use(h.principal)
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
	})
}

// CreateRequest is the payload for POST /candidates.
type CreateRequest struct {
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Email                string   `json:"email"`
	PhoneNumber          string   `json:"phone_number,omitempty"`
	LinkedinURL          string   `json:"linkedin_url,omitempty"`
	GithubURL            string   `json:"github_url,omitempty"`
	PortfolioURL         string   `json:"portfolio_url,omitempty"`
	CurrentTitle         string   `json:"current_title,omitempty"`
	CurrentCompany       string   `json:"current_company,omitempty"`
	YearsOfExperience    float64  `json:"years_of_experience,omitempty"`
	ExpectedSalaryMin    int      `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax    int      `json:"expected_salary_max,omitempty"`
	PreferredLocations   []string `json:"preferred_locations,omitempty"`
	RemoteWorkPreference string   `json:"remote_work_preference,omitempty"`
	Summary              string   `json:"summary,omitempty"`
}

func (r *CreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.RemoteWorkPreference = strings.ToLower(strings.TrimSpace(r.RemoteWorkPreference))
}

func (r *CreateRequest) Validate() error {
	var fields []dErrors.FieldError
	if r.FirstName == "" {
		fields = append(fields, dErrors.FieldError{Field: "first_name", Message: "first name is required", Code: "required"})
	}
	if r.LastName == "" {
		fields = append(fields, dErrors.FieldError{Field: "last_name", Message: "last name is required", Code: "required"})
	}
	switch {
	case r.Email == "":
		fields = append(fields, dErrors.FieldError{Field: "email", Message: "email is required", Code: "required"})
	case !validEmail(r.Email):
		fields = append(fields, dErrors.FieldError{Field: "email", Message: "email is not a valid address", Code: "invalid"})
	}
	if r.RemoteWorkPreference != "" && !models.ValidRemoteWorkPreference(r.RemoteWorkPreference) {
		fields = append(fields, dErrors.FieldError{
			Field: "remote_work_preference", Message: "must be one of: remote, hybrid, onsite, any", Code: "invalid",
		})
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("candidate request is invalid", fields...)
	}
	return nil
}

// UpdateRequest is the payload for PUT /candidates/{id}. Absent fields are
// left unchanged; email cannot be updated.
type UpdateRequest struct {
	FirstName            *string  `json:"first_name,omitempty"`
	LastName             *string  `json:"last_name,omitempty"`
	PhoneNumber          *string  `json:"phone_number,omitempty"`
	LinkedinURL          *string  `json:"linkedin_url,omitempty"`
	GithubURL            *string  `json:"github_url,omitempty"`
	PortfolioURL         *string  `json:"portfolio_url,omitempty"`
	CurrentTitle         *string  `json:"current_title,omitempty"`
	CurrentCompany       *string  `json:"current_company,omitempty"`
	YearsOfExperience    *float64 `json:"years_of_experience,omitempty"`
	ExpectedSalaryMin    *int     `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax    *int     `json:"expected_salary_max,omitempty"`
	PreferredLocations   []string `json:"preferred_locations,omitempty"`
	RemoteWorkPreference *string  `json:"remote_work_preference,omitempty"`
	Summary              *string  `json:"summary,omitempty"`
	AvailabilityStatus   *string  `json:"availability_status,omitempty"`
}

func (r *UpdateRequest) Normalize() {
	if r.RemoteWorkPreference != nil {
		lowered := strings.ToLower(strings.TrimSpace(*r.RemoteWorkPreference))
		r.RemoteWorkPreference = &lowered
	}
}

func (r *UpdateRequest) Validate() error {
	if r.RemoteWorkPreference != nil && !models.ValidRemoteWorkPreference(*r.RemoteWorkPreference) {
		return dErrors.NewValidation("candidate request is invalid", dErrors.FieldError{
			Field: "remote_work_preference", Message: "must be one of: remote, hybrid, onsite, any", Code: "invalid",
		})
	}
	return nil
}

// CandidateResponse is the public projection of a candidate profile.
type CandidateResponse struct {
	ID                     string    `json:"id"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	Email                  string    `json:"email"`
	PhoneNumber            string    `json:"phone_number,omitempty"`
	LinkedinURL            string    `json:"linkedin_url,omitempty"`
	GithubURL              string    `json:"github_url,omitempty"`
	PortfolioURL           string    `json:"portfolio_url,omitempty"`
	CurrentTitle           string    `json:"current_title,omitempty"`
	CurrentCompany         string    `json:"current_company,omitempty"`
	YearsOfExperience      float64   `json:"years_of_experience,omitempty"`
	ExpectedSalaryMin      int       `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax      int       `json:"expected_salary_max,omitempty"`
	PreferredLocations     []string  `json:"preferred_locations,omitempty"`
	RemoteWorkPreference   string    `json:"remote_work_preference"`
	Summary                string    `json:"summary,omitempty"`
	ProfileCompletionScore float64   `json:"profile_completion_score"`
	AvailabilityStatus     string    `json:"availability_status"`
	Active                 bool      `json:"active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewCandidateResponse projects a candidate model onto the wire shape.
func NewCandidateResponse(candidate *models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:                     candidate.ID.String(),
		FirstName:              candidate.FirstName,
		LastName:               candidate.LastName,
		Email:                  candidate.Email,
		PhoneNumber:            candidate.PhoneNumber,
		LinkedinURL:            candidate.LinkedinURL,
		GithubURL:              candidate.GithubURL,
		PortfolioURL:           candidate.PortfolioURL,
		CurrentTitle:           candidate.CurrentTitle,
		CurrentCompany:         candidate.CurrentCompany,
		YearsOfExperience:      candidate.YearsOfExperience,
		ExpectedSalaryMin:      candidate.ExpectedSalaryMin,
		ExpectedSalaryMax:      candidate.ExpectedSalaryMax,
		PreferredLocations:     candidate.PreferredLocations,
		RemoteWorkPreference:   candidate.RemoteWorkPreference,
		Summary:                candidate.Summary,
		ProfileCompletionScore: candidate.ProfileCompletionScore,
		AvailabilityStatus:     candidate.AvailabilityStatus,
		Active:                 candidate.Active,
		CreatedAt:              candidate.CreatedAt,
		UpdatedAt:              candidate.UpdatedAt,
	}
}

// HandleCreate implements POST /candidates.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	candidate, err := h.candidates.Create(ctx, &service.CreateCommand{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		LinkedinURL:          req.LinkedinURL,
		GithubURL:            req.GithubURL,
		PortfolioURL:         req.PortfolioURL,
		CurrentTitle:         req.CurrentTitle,
		CurrentCompany:       req.CurrentCompany,
		YearsOfExperience:    req.YearsOfExperience,
		ExpectedSalaryMin:    req.ExpectedSalaryMin,
		ExpectedSalaryMax:    req.ExpectedSalaryMax,
		PreferredLocations:   req.PreferredLocations,
		RemoteWorkPreference: req.RemoteWorkPreference,
		Summary:              req.Summary,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "candidate creation failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "CANDIDATE_CREATED", "candidate created successfully", NewCandidateResponse(candidate))
}

// HandleList implements GET /candidates with optional ?search=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	candidates, meta, err := h.candidates.List(ctx, search, httputil.PageFromQuery(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	responses := make([]CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, NewCandidateResponse(candidate))
	}
	httputil.WritePage(w, "CANDIDATES_RETRIEVED", "candidates retrieved successfully", responses, meta)
}

// HandleGet implements GET /candidates/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "candidate id is not a valid uuid"))
		return
	}

	candidate, err := h.candidates.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "CANDIDATE_RETRIEVED", "candidate retrieved successfully", NewCandidateResponse(candidate))
}

// HandleUpdate implements PUT /candidates/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "candidate id is not a valid uuid"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	candidate, err := h.candidates.Update(ctx, id, &service.UpdateCommand{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PhoneNumber:          req.PhoneNumber,
		LinkedinURL:          req.LinkedinURL,
		GithubURL:            req.GithubURL,
		PortfolioURL:         req.PortfolioURL,
		CurrentTitle:         req.CurrentTitle,
		CurrentCompany:       req.CurrentCompany,
		YearsOfExperience:    req.YearsOfExperience,
		ExpectedSalaryMin:    req.ExpectedSalaryMin,
		ExpectedSalaryMax:    req.ExpectedSalaryMax,
		PreferredLocations:   req.PreferredLocations,
		RemoteWorkPreference: req.RemoteWorkPreference,
		Summary:              req.Summary,
		AvailabilityStatus:   req.AvailabilityStatus,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "CANDIDATE_UPDATED", "candidate updated successfully", NewCandidateResponse(candidate))
}

func validEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}
