package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"talenthub/internal/auth/models"
	"talenthub/internal/platform/tracer"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
)

// RegisterCommand carries the validated registration input. The plaintext
// password never leaves this layer: only its hash crosses the persistence
// boundary, and it is never logged.
type RegisterCommand struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Username    string
	PhoneNumber string
	Timezone    string
}

// Register creates a new user account. Duplicate emails fail with a conflict.
func (s *Service) Register(ctx context.Context, cmd *RegisterCommand) (user *models.User, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRegister,
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(cmd.Email)),
	)
	defer func() { span.End(err) }()

	hashed, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	timezone := cmd.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	user = &models.User{
		ID:             uuid.New(),
		Email:          cmd.Email,
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Username:       cmd.Username,
		PhoneNumber:    cmd.PhoneNumber,
		Timezone:       timezone,
		HashedPassword: hashed,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "email already registered")
		}
		return nil, storeError(err, "user not found")
	}

	s.metrics.IncrementUsersCreated()
	s.logAudit(ctx, "user_registered", "user_id", user.ID.String())
	return user, nil
}
