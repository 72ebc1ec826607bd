package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
)

const testUserAgent = "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0"

func (s *ServiceSuite) TestLogin() {
	user := s.newTestUser(uuid.New())

	s.T().Run("happy path - returns token, ttl and user", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockHasher.EXPECT().Verify("secret", user.HashedPassword).Return(true)
		s.mockTokens.EXPECT().Issue(user.Email).Return("signed-token", nil)
		s.mockTokens.EXPECT().TTL().Return(30 * time.Minute)

		result, err := s.service.Login(context.Background(), user.Email, "secret", testUserAgent)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "signed-token", result.Token)
		assert.Equal(s.T(), 1800, result.ExpiresIn)
		assert.Equal(s.T(), user, result.User)
	})

	s.T().Run("unknown email and wrong password give the same message", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, fmt.Errorf("find user: %w", sentinel.ErrNotFound))

		_, unknownErr := s.service.Login(context.Background(), "nobody@example.com", "secret", testUserAgent)

		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockHasher.EXPECT().Verify("wrong", user.HashedPassword).Return(false)

		_, wrongErr := s.service.Login(context.Background(), user.Email, "wrong", testUserAgent)

		assert.True(s.T(), dErrors.HasCode(unknownErr, dErrors.CodeAuthentication))
		assert.True(s.T(), dErrors.HasCode(wrongErr, dErrors.CodeAuthentication))
		assert.Equal(s.T(), unknownErr.Error(), wrongErr.Error())
	})

	s.T().Run("disabled account fails like bad credentials", func(t *testing.T) {
		disabled := s.newTestUser(uuid.New())
		disabled.Active = false
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), disabled.Email).Return(disabled, nil)
		s.mockHasher.EXPECT().Verify("secret", disabled.HashedPassword).Return(true)

		result, err := s.service.Login(context.Background(), disabled.Email, "secret", testUserAgent)
		assert.Nil(s.T(), result)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAuthentication))
		assert.Contains(s.T(), err.Error(), "incorrect email or password")
	})

	s.T().Run("token issuance failure maps to internal error", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockHasher.EXPECT().Verify("secret", user.HashedPassword).Return(true)
		s.mockTokens.EXPECT().Issue(user.Email).Return("", assert.AnError)

		result, err := s.service.Login(context.Background(), user.Email, "secret", testUserAgent)
		assert.Nil(s.T(), result)
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.T().Run("empty user agent still logs in", func(t *testing.T) {
		s.mockUsers.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockHasher.EXPECT().Verify("secret", user.HashedPassword).Return(true)
		s.mockTokens.EXPECT().Issue(user.Email).Return("signed-token", nil)
		s.mockTokens.EXPECT().TTL().Return(30 * time.Minute)

		result, err := s.service.Login(context.Background(), user.Email, "secret", "")
		require.NoError(s.T(), err)
		assert.NotEmpty(s.T(), result.Token)
	})
}
