package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"talenthub/internal/auth/models"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
)

func (s *ServiceSuite) TestProfile() {
	user := s.newTestUser(uuid.New())

	s.T().Run("happy path", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		got, err := s.service.Profile(context.Background(), user.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), user, got)
	})

	s.T().Run("unknown id maps to not found", func(t *testing.T) {
		missing := uuid.New()
		s.mockUsers.EXPECT().FindByID(gomock.Any(), missing).
			Return(nil, fmt.Errorf("find user: %w", sentinel.ErrNotFound))

		got, err := s.service.Profile(context.Background(), missing)
		assert.Nil(s.T(), got)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestResolve() {
	user := s.newTestUser(uuid.New())

	s.T().Run("happy path", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

		got, err := s.service.Resolve(context.Background(), user.Email)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), user, got)
	})

	s.T().Run("unknown subject maps to not found", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "gone@example.com").
			Return(nil, fmt.Errorf("find user: %w", sentinel.ErrNotFound))

		got, err := s.service.Resolve(context.Background(), "gone@example.com")
		assert.Nil(s.T(), got)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	s.T().Run("applies non-empty fields and never touches email", func(t *testing.T) {
		user := s.newTestUser(uuid.New())
		originalEmail := user.Email
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		var saved *models.User
		s.mockUsers.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				saved = u
				return nil
			})

		got, err := s.service.UpdateProfile(context.Background(), user.ID, &UpdateProfileCommand{
			FirstName: "Janet",
			Timezone:  "Europe/Berlin",
		})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), saved, got)
		assert.Equal(s.T(), "Janet", got.FirstName)
		assert.Equal(s.T(), "Doe", got.LastName, "empty fields are left untouched")
		assert.Equal(s.T(), "Europe/Berlin", got.Timezone)
		assert.Equal(s.T(), originalEmail, got.Email)
	})

	s.T().Run("whitespace-only fields are ignored", func(t *testing.T) {
		user := s.newTestUser(uuid.New())
		s.mockUsers.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockUsers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.service.UpdateProfile(context.Background(), user.ID, &UpdateProfileCommand{
			Username: "   ",
		})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "janedoe", got.Username)
	})

	s.T().Run("unknown id maps to not found", func(t *testing.T) {
		missing := uuid.New()
		s.mockUsers.EXPECT().FindByID(gomock.Any(), missing).
			Return(nil, fmt.Errorf("find user: %w", sentinel.ErrNotFound))

		got, err := s.service.UpdateProfile(context.Background(), missing, &UpdateProfileCommand{})
		assert.Nil(s.T(), got)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
