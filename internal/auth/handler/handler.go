// Package handler exposes the authentication endpoints: registration, login,
// current-profile lookup, and logout.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talenthub/internal/auth/models"
	"talenthub/internal/auth/service"
	"talenthub/internal/platform/middleware"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/platform/httputil"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Register(ctx context.Context, cmd *service.RegisterCommand) (*models.User, error)
	Login(ctx context.Context, email, password, userAgent string) (*service.LoginResult, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.User, error)
	Logout(ctx context.Context, id uuid.UUID)
}

// Handler handles the /auth route group.
type Handler struct {
	auth      Service
	logger    *slog.Logger
	principal func(http.Handler) http.Handler
}

// New creates an auth Handler. The principal middleware guards /me and /logout.
func New(auth Service, logger *slog.Logger, principal func(http.Handler) http.Handler) *Handler {
	return &Handler{
		auth:      auth,
		logger:    logger,
		principal: principal,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.principal)
			r.Get("/me", h.HandleMe)
			r.Post("/logout", h.HandleLogout)
		})
	})
}

// HandleRegister implements POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.auth.Register(ctx, &service.RegisterCommand{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Timezone:    req.Timezone,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "USER_REGISTERED", "user registered successfully", NewUserResponse(user))
}

// HandleLogin implements POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password, r.UserAgent())
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "LOGIN_SUCCESS", "login successful", TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresIn:   result.ExpiresIn,
		User:        NewUserResponse(result.User),
	})
}

// HandleMe implements GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	user, err := h.auth.Profile(ctx, principal.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "PROFILE_RETRIEVED", "profile retrieved successfully", NewUserResponse(user))
}

// HandleLogout implements POST /auth/logout. Tokens are stateless, so this
// only audits the intent; clients discard the token.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := middleware.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
		return
	}

	h.auth.Logout(ctx, principal.ID)
	httputil.WriteSuccess(w, http.StatusOK, "LOGOUT_SUCCESS", "logged out successfully", nil)
}
