package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"talenthub/internal/auth/models"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
)

func (s *ServiceSuite) TestRegister() {
	cmd := &RegisterCommand{
		Email:     "jane@example.com",
		Password:  "correct horse battery",
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "janedoe",
	}

	s.T().Run("happy path - creates active user with hashed password", func(t *testing.T) {
		s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)

		var created *models.User
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *models.User) error {
				created = user
				return nil
			})

		user, err := s.service.Register(context.Background(), cmd)
		require.NoError(s.T(), err)
		require.NotNil(s.T(), user)
		assert.Equal(s.T(), created, user)
		assert.Equal(s.T(), "$2a$10$hashed", user.HashedPassword)
		assert.True(s.T(), user.Active)
		assert.False(s.T(), user.Superuser)
		assert.Equal(s.T(), "UTC", user.Timezone, "empty timezone defaults to UTC")
		assert.NotEqual(s.T(), cmd.Password, user.HashedPassword)
	})

	s.T().Run("duplicate email maps to conflict", func(t *testing.T) {
		s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("insert user: %w", sentinel.ErrAlreadyExists))

		user, err := s.service.Register(context.Background(), cmd)
		assert.Nil(s.T(), user)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(s.T(), err.Error(), "email already registered")
	})

	s.T().Run("hash failure propagates", func(t *testing.T) {
		hashErr := dErrors.New(dErrors.CodeValidation, "password is required")
		s.mockHasher.EXPECT().Hash("").Return("", hashErr)

		empty := *cmd
		empty.Password = ""
		user, err := s.service.Register(context.Background(), &empty)
		assert.Nil(s.T(), user)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.T().Run("store failure maps to database error", func(t *testing.T) {
		s.mockHasher.EXPECT().Hash(cmd.Password).Return("$2a$10$hashed", nil)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

		user, err := s.service.Register(context.Background(), cmd)
		assert.Nil(s.T(), user)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeDatabase))
	})

	s.T().Run("explicit timezone is kept", func(t *testing.T) {
		tz := *cmd
		tz.Timezone = "Europe/Berlin"
		s.mockHasher.EXPECT().Hash(tz.Password).Return("$2a$10$hashed", nil)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		user, err := s.service.Register(context.Background(), &tz)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Europe/Berlin", user.Timezone)
	})
}
