package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	authModels "talenthub/internal/auth/models"
	companyStore "talenthub/internal/company/store/company"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

type CompanyServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func (s *CompanyServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(companyStore.NewInMemory(), WithLogger(logger))
	require.NoError(s.T(), err)
	s.service = svc
	s.ctx = context.Background()
}

func user(superuser bool) *authModels.User {
	return &authModels.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		Active:    true,
		Superuser: superuser,
	}
}

func (s *CompanyServiceSuite) TestCreateDerivesSlug() {
	company, err := s.service.Create(s.ctx, user(false), &CreateCommand{Name: "Acme Rockets, Inc."})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "acme-rockets-inc", company.Slug)
	assert.True(s.T(), company.Active)
}

func (s *CompanyServiceSuite) TestCreateDuplicateSlugConflict() {
	creator := user(false)
	_, err := s.service.Create(s.ctx, creator, &CreateCommand{Name: "Acme", Slug: "acme"})
	require.NoError(s.T(), err)

	_, err = s.service.Create(s.ctx, user(false), &CreateCommand{Name: "Other Acme", Slug: "acme"})
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *CompanyServiceSuite) TestCreateUnsluggableName() {
	_, err := s.service.Create(s.ctx, user(false), &CreateCommand{Name: "!!!"})
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *CompanyServiceSuite) TestGetMembershipGate() {
	creator := user(false)
	company, err := s.service.Create(s.ctx, creator, &CreateCommand{Name: "Acme"})
	require.NoError(s.T(), err)

	s.T().Run("creator is a member", func(t *testing.T) {
		got, err := s.service.Get(s.ctx, creator, company.ID)
		require.NoError(t, err)
		assert.Equal(t, company.ID, got.ID)
	})

	s.T().Run("non-member is forbidden", func(t *testing.T) {
		_, err := s.service.Get(s.ctx, user(false), company.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAuthorization))
	})

	s.T().Run("superuser bypasses membership", func(t *testing.T) {
		got, err := s.service.Get(s.ctx, user(true), company.ID)
		require.NoError(t, err)
		assert.Equal(t, company.ID, got.ID)
	})

	s.T().Run("missing company is not found even for members", func(t *testing.T) {
		_, err := s.service.Get(s.ctx, creator, uuid.New())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CompanyServiceSuite) TestListMineScopedToPrincipal() {
	mine := user(false)
	other := user(false)
	_, err := s.service.Create(s.ctx, mine, &CreateCommand{Name: "Mine One"})
	require.NoError(s.T(), err)
	_, err = s.service.Create(s.ctx, mine, &CreateCommand{Name: "Mine Two"})
	require.NoError(s.T(), err)
	_, err = s.service.Create(s.ctx, other, &CreateCommand{Name: "Theirs"})
	require.NoError(s.T(), err)

	companies, meta, err := s.service.ListMine(s.ctx, mine, pagination.New(1, 20))
	require.NoError(s.T(), err)
	assert.Len(s.T(), companies, 2)
	assert.Equal(s.T(), 2, meta.TotalCount)
}

func TestCompanyServiceSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceSuite))
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Rockets, Inc.", "acme-rockets-inc"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPER", "upper"},
		{"déjà vu", "d-j-vu"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
