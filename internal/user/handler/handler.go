// Package handler exposes the user directory endpoints: the superuser-only
// account listing and the self-service profile update.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authHandler "talenthub/internal/auth/handler"
	"talenthub/internal/auth/models"
	authService "talenthub/internal/auth/service"
	"talenthub/internal/platform/middleware"
	"talenthub/internal/user/service"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
	"talenthub/pkg/platform/httputil"
)

// Directory defines the listing operations the handler needs.
type Directory interface {
	List(ctx context.Context, page pagination.Page) ([]*models.User, pagination.Meta, error)
}

// ProfileService updates the authenticated user's own profile.
type ProfileService interface {
	UpdateProfile(ctx context.Context, id uuid.UUID, cmd *authService.UpdateProfileCommand) (*models.User, error)
}

// Handler handles the /users route group.
type Handler struct {
	directory Directory
	profiles  ProfileService
	logger    *slog.Logger
	principal func(http.Handler) http.Handler
}

// New creates a user Handler. All routes run behind the principal middleware.
func New(directory Directory, profiles ProfileService, logger *slog.Logger, principal func(http.Handler) http.Handler) *Handler {
	return &Handler{
		directory: directory,
		profiles:  profiles,
		logger:    logger,
		principal: principal,
	}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(h.principal)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperuser)
			r.Get("/", h.HandleList)
		})

		r.Put("/me", h.HandleUpdateMe)
	})
}

// HandleList implements GET /users. Superuser only; the gate runs in the
// route group above.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, meta, err := h.directory.List(ctx, httputil.PageFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "user listing failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]authHandler.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, authHandler.NewUserResponse(user))
	}
	httputil.WritePage(w, "USERS_RETRIEVED", "users retrieved successfully", responses, meta)
}

// UpdateProfileRequest is the payload for PUT /users/me. All fields are
// optional; empty fields are left untouched. Email is intentionally absent.
type UpdateProfileRequest struct {
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Username          string `json:"username,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	Timezone          string `json:"timezone,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// HandleUpdateMe implements PUT /users/me.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.profiles.UpdateProfile(ctx, principal.ID, &authService.UpdateProfileCommand{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Username:          req.Username,
		PhoneNumber:       req.PhoneNumber,
		Timezone:          req.Timezone,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "PROFILE_UPDATED", "profile updated successfully", authHandler.NewUserResponse(user))
}

var _ Directory = (*service.Service)(nil)
