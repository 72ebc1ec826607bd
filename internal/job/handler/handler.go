// Package handler exposes the job posting endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authModels "talenthub/internal/auth/models"
	"talenthub/internal/job/models"
	"talenthub/internal/job/service"
	"talenthub/internal/platform/middleware"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
	"talenthub/pkg/platform/httputil"
)

// Service defines the job operations the handler needs.
type Service interface {
	Create(ctx context.Context, principal *authModels.User, cmd *service.CreateCommand) (*models.Job, error)
	List(ctx context.Context, page pagination.Page) ([]*models.Job, pagination.Meta, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, principal *authModels.User, id uuid.UUID, cmd *service.UpdateCommand) (*models.Job, error)
}

// Handler handles the /jobs route group.
type Handler struct {
	jobs      Service
	logger    *slog.Logger
	principal func(http.Handler) http.Handler
}

// New creates a job Handler. All routes run behind the principal middleware.
func New(jobs Service, logger *slog.Logger, principal func(http.Handler) http.Handler) *Handler {
	return &Handler{
		jobs:      jobs,
		logger:    logger,
		principal: principal,
	}
}

// Register registers the job routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Use(h.principal)
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
	})
}

// CreateRequest is the payload for POST /jobs.
type CreateRequest struct {
	CompanyID      string `json:"company_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	SalaryMin      int    `json:"salary_min,omitempty"`
	SalaryMax      int    `json:"salary_max,omitempty"`
	RemoteAllowed  bool   `json:"remote_allowed,omitempty"`
}

func (r *CreateRequest) Normalize() {
	r.CompanyID = strings.TrimSpace(r.CompanyID)
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
	r.EmploymentType = strings.ToLower(strings.TrimSpace(r.EmploymentType))
}

func (r *CreateRequest) Validate() error {
	var fields []dErrors.FieldError
	switch {
	case r.CompanyID == "":
		fields = append(fields, dErrors.FieldError{Field: "company_id", Message: "company id is required", Code: "required"})
	default:
		if _, err := uuid.Parse(r.CompanyID); err != nil {
			fields = append(fields, dErrors.FieldError{Field: "company_id", Message: "company id is not a valid uuid", Code: "invalid"})
		}
	}
	if r.Title == "" {
		fields = append(fields, dErrors.FieldError{Field: "title", Message: "title is required", Code: "required"})
	}
	if r.EmploymentType != "" && !models.ValidEmploymentType(r.EmploymentType) {
		fields = append(fields, dErrors.FieldError{
			Field: "employment_type", Message: "must be one of: full_time, part_time, contract, internship", Code: "invalid",
		})
	}
	if r.SalaryMin != 0 && r.SalaryMax != 0 && r.SalaryMin > r.SalaryMax {
		fields = append(fields, dErrors.FieldError{
			Field: "salary_min", Message: "salary minimum exceeds maximum", Code: "invalid",
		})
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("job request is invalid", fields...)
	}
	return nil
}

// UpdateRequest is the payload for PUT /jobs/{id}. Absent fields are left
// unchanged; the company binding cannot be updated.
type UpdateRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	SalaryMin      *int    `json:"salary_min,omitempty"`
	SalaryMax      *int    `json:"salary_max,omitempty"`
	RemoteAllowed  *bool   `json:"remote_allowed,omitempty"`
	Status         *string `json:"status,omitempty"`
}

func (r *UpdateRequest) Normalize() {
	if r.EmploymentType != nil {
		lowered := strings.ToLower(strings.TrimSpace(*r.EmploymentType))
		r.EmploymentType = &lowered
	}
	if r.Status != nil {
		lowered := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &lowered
	}
}

func (r *UpdateRequest) Validate() error {
	var fields []dErrors.FieldError
	if r.EmploymentType != nil && !models.ValidEmploymentType(*r.EmploymentType) {
		fields = append(fields, dErrors.FieldError{
			Field: "employment_type", Message: "must be one of: full_time, part_time, contract, internship", Code: "invalid",
		})
	}
	if r.Status != nil {
		switch *r.Status {
		case models.StatusOpen, models.StatusClosed, models.StatusDraft:
		default:
			fields = append(fields, dErrors.FieldError{
				Field: "status", Message: "must be one of: open, closed, draft", Code: "invalid",
			})
		}
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("job request is invalid", fields...)
	}
	return nil
}

// JobResponse is the public projection of a job posting.
type JobResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
	EmploymentType string    `json:"employment_type"`
	SalaryMin      int       `json:"salary_min,omitempty"`
	SalaryMax      int       `json:"salary_max,omitempty"`
	RemoteAllowed  bool      `json:"remote_allowed"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewJobResponse projects a job model onto the wire shape.
func NewJobResponse(job *models.Job) JobResponse {
	return JobResponse{
		ID:             job.ID.String(),
		CompanyID:      job.CompanyID.String(),
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		EmploymentType: job.EmploymentType,
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		RemoteAllowed:  job.RemoteAllowed,
		Status:         job.Status,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// HandleCreate implements POST /jobs behind the membership gate.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	companyID, _ := uuid.Parse(req.CompanyID)
	job, err := h.jobs.Create(ctx, principal, &service.CreateCommand{
		CompanyID:      companyID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		RemoteAllowed:  req.RemoteAllowed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "job creation failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "JOB_CREATED", "job created successfully", NewJobResponse(job))
}

// HandleList implements GET /jobs.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobs, meta, err := h.jobs.List(ctx, httputil.PageFromQuery(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	responses := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, NewJobResponse(job))
	}
	httputil.WritePage(w, "JOBS_RETRIEVED", "jobs retrieved successfully", responses, meta)
}

// HandleGet implements GET /jobs/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "job id is not a valid uuid"))
		return
	}

	job, err := h.jobs.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "JOB_RETRIEVED", "job retrieved successfully", NewJobResponse(job))
}

// HandleUpdate implements PUT /jobs/{id} behind the membership gate.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "job id is not a valid uuid"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	job, err := h.jobs.Update(ctx, principal, id, &service.UpdateCommand{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		RemoteAllowed:  req.RemoteAllowed,
		Status:         req.Status,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "JOB_UPDATED", "job updated successfully", NewJobResponse(job))
}
