// Package handler exposes the company endpoints: creation, member-scoped
// listing, and gated retrieval.
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
	"talenthub/internal/company/models"
	"talenthub/internal/company/service"
	"talenthub/internal/platform/middleware"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
	"talenthub/pkg/platform/httputil"
)

// Service defines the company operations the handler needs.
type Service interface {
	Create(ctx context.Context, creator *authModels.User, cmd *service.CreateCommand) (*models.Company, error)
	ListMine(ctx context.Context, principal *authModels.User, page pagination.Page) ([]*models.Company, pagination.Meta, error)
	Get(ctx context.Context, principal *authModels.User, id uuid.UUID) (*models.Company, error)
}

// Handler handles the /companies route group.
type Handler struct {
	companies Service
	logger    *slog.Logger
	principal func(http.Handler) http.Handler
}

// New creates a company Handler. All routes run behind the principal middleware.
func New(companies Service, logger *slog.Logger, principal func(http.Handler) http.Handler) *Handler {
	return &Handler{
		companies: companies,
		logger:    logger,
		principal: principal,
	}
}

// Register registers the company routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/companies", func(r chi.Router) {
		r.Use(h.principal)
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
	})
}

// CreateRequest is the payload for POST /companies.
type CreateRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Description  string `json:"description,omitempty"`
	Website      string `json:"website,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Size         string `json:"size,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
	FoundedYear  int    `json:"founded_year,omitempty"`
}

func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Description = strings.TrimSpace(r.Description)
	r.Website = strings.TrimSpace(r.Website)
	r.Industry = strings.TrimSpace(r.Industry)
	r.Size = strings.TrimSpace(r.Size)
	r.Headquarters = strings.TrimSpace(r.Headquarters)
}

func (r *CreateRequest) Validate() error {
	var fields []dErrors.FieldError
	if r.Name == "" {
		fields = append(fields, dErrors.FieldError{Field: "name", Message: "name is required", Code: "required"})
	}
	if r.FoundedYear != 0 && (r.FoundedYear < 1800 || r.FoundedYear > time.Now().Year()) {
		fields = append(fields, dErrors.FieldError{Field: "founded_year", Message: "founded year is out of range", Code: "invalid"})
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("company request is invalid", fields...)
	}
	return nil
}

// CompanyResponse is the public projection of a company.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Website      string    `json:"website,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Size         string    `json:"size,omitempty"`
	Headquarters string    `json:"headquarters,omitempty"`
	FoundedYear  int       `json:"founded_year,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCompanyResponse projects a company model onto the wire shape.
func NewCompanyResponse(company *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:           company.ID.String(),
		Name:         company.Name,
		Slug:         company.Slug,
		Description:  company.Description,
		Website:      company.Website,
		Industry:     company.Industry,
		Size:         company.Size,
		Headquarters: company.Headquarters,
		FoundedYear:  company.FoundedYear,
		Active:       company.Active,
		CreatedAt:    company.CreatedAt,
		UpdatedAt:    company.UpdatedAt,
	}
}

// HandleCreate implements POST /companies.
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

	company, err := h.companies.Create(ctx, principal, &service.CreateCommand{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Website:      req.Website,
		Industry:     req.Industry,
		Size:         req.Size,
		Headquarters: req.Headquarters,
		FoundedYear:  req.FoundedYear,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "company creation failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "COMPANY_CREATED", "company created successfully", NewCompanyResponse(company))
}

// HandleList implements GET /companies: the companies the principal belongs to.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	companies, meta, err := h.companies.ListMine(ctx, principal, httputil.PageFromQuery(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, NewCompanyResponse(company))
	}
	httputil.WritePage(w, "COMPANIES_RETRIEVED", "companies retrieved successfully", responses, meta)
}

// HandleGet implements GET /companies/{id} behind the membership gate.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "company id is not a valid uuid"))
		return
	}

	company, err := h.companies.Get(ctx, principal, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "COMPANY_RETRIEVED", "company retrieved successfully", NewCompanyResponse(company))
}
