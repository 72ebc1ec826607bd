package service

import (
	"context"

	"talenthub/internal/auth/device"
	"talenthub/internal/auth/models"
	"talenthub/internal/platform/tracer"
	dErrors "talenthub/pkg/domain-errors"
)

const badCredentialsMsg = "incorrect email or password"

// LoginResult is what a successful credential check yields: a signed bearer
// token, its lifetime in seconds, and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresIn int
	User      *models.User
}

// Login verifies the email/password pair and issues an access token.
// Unknown email, wrong password and disabled account all fail with the
// same authentication error so the response does not reveal which part
// was wrong.
func (s *Service) Login(ctx context.Context, email, password, userAgent string) (result *LoginResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanLogin,
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(email)),
	)
	defer func() { span.End(err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.authFailure(ctx, "unknown_email")
		return nil, dErrors.New(dErrors.CodeAuthentication, badCredentialsMsg)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.authFailure(ctx, "bad_password", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeAuthentication, badCredentialsMsg)
	}

	if !user.IsActive() {
		s.authFailure(ctx, "inactive_account", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeAuthentication, badCredentialsMsg)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	meta := device.Describe(userAgent)
	s.metrics.IncrementLogins()
	s.metrics.IncrementTokensIssued()
	s.logAudit(ctx, "user_logged_in",
		"user_id", user.ID.String(),
		"browser", meta.Browser,
		"os", meta.OS,
		"platform", meta.Platform,
	)

	return &LoginResult{
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}
