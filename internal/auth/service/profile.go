package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"talenthub/internal/auth/models"
	"talenthub/internal/platform/tracer"
)

// Profile loads a user by id.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (user *models.User, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanResolve)
	defer func() { span.End(err) }()

	user, err = s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	return user, nil
}

// Resolve maps a token subject back to its account. Used by the bearer
// middleware on every protected request.
func (s *Service) Resolve(ctx context.Context, email string) (user *models.User, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanResolve,
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(email)),
	)
	defer func() { span.End(err) }()

	user, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	return user, nil
}

// UpdateProfileCommand holds the mutable profile fields. Email is not among
// them: it is the token subject and changing it would invalidate sessions.
type UpdateProfileCommand struct {
	FirstName         string
	LastName          string
	Username          string
	PhoneNumber       string
	Timezone          string
	ProfilePictureURL string
}

// UpdateProfile applies the non-empty fields of cmd to the user's profile.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, cmd *UpdateProfileCommand) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user not found")
	}

	if v := strings.TrimSpace(cmd.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(cmd.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(cmd.Username); v != "" {
		user.Username = v
	}
	if v := strings.TrimSpace(cmd.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if v := strings.TrimSpace(cmd.Timezone); v != "" {
		user.Timezone = v
	}
	if v := strings.TrimSpace(cmd.ProfilePictureURL); v != "" {
		user.ProfilePictureURL = v
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError(err, "user not found")
	}

	s.logAudit(ctx, "profile_updated", "user_id", user.ID.String())
	return user, nil
}

// Logout acknowledges the client's intent. Tokens are stateless and remain
// valid until expiry; clients discard them locally.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) {
	s.logAudit(ctx, "user_logged_out", "user_id", id.String())
}
