package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	authModels "talenthub/internal/auth/models"
	"talenthub/internal/auth/password"
	authService "talenthub/internal/auth/service"
	userStore "talenthub/internal/auth/store/user"
	"talenthub/internal/auth/token"
	"talenthub/internal/company/handler"
	"talenthub/internal/company/service"
	companyStore "talenthub/internal/company/store/company"
	"talenthub/internal/platform/middleware"
	"talenthub/pkg/pagination"
)

type envelope struct {
	Data       json.RawMessage  `json:"data"`
	Pagination *pagination.Meta `json:"pagination"`
	Message    string           `json:"message"`
	Success    bool             `json:"success"`
	Code       string           `json:"code"`
}

type CompanyHandlerSuite struct {
	suite.Suite
	router chi.Router
	users  *userStore.InMemoryStore
	tokens *token.Service
}

func (s *CompanyHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.users = userStore.NewInMemory()
	s.tokens = token.New("test-signing-key", 30*time.Minute)
	hasher := password.New(bcrypt.MinCost)

	auth, err := authService.New(s.users, hasher, s.tokens, authService.WithLogger(logger))
	require.NoError(s.T(), err)
	companies, err := service.New(companyStore.NewInMemory(), service.WithLogger(logger))
	require.NoError(s.T(), err)

	principal := middleware.RequirePrincipal(s.tokens, auth)

	s.router = chi.NewRouter()
	s.router.Route("/api/v1", func(r chi.Router) {
		handler.New(companies, logger, principal).Register(r)
	})
}

func (s *CompanyHandlerSuite) seedUser(email string, superuser bool) string {
	now := time.Now().UTC()
	require.NoError(s.T(), s.users.Create(context.Background(), &authModels.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Seed",
		LastName:  "User",
		Active:    true,
		Superuser: superuser,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	signed, err := s.tokens.Issue(email)
	require.NoError(s.T(), err)
	return signed
}

func (s *CompanyHandlerSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (s *CompanyHandlerSuite) createCompany(token, name string) string {
	w, env := s.do(http.MethodPost, "/api/v1/companies/", token, map[string]any{"name": name})
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Equal(s.T(), "COMPANY_CREATED", env.Code)

	var company map[string]any
	require.NoError(s.T(), json.Unmarshal(env.Data, &company))
	return company["id"].(string)
}

func (s *CompanyHandlerSuite) TestCreateAndGetAsOwner() {
	owner := s.seedUser("owner@example.com", false)
	id := s.createCompany(owner, "Acme Rockets")

	w, env := s.do(http.MethodGet, "/api/v1/companies/"+id, owner, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "COMPANY_RETRIEVED", env.Code)
	assert.Contains(s.T(), string(env.Data), "acme-rockets")
}

func (s *CompanyHandlerSuite) TestGetAsNonMemberForbidden() {
	owner := s.seedUser("owner@example.com", false)
	stranger := s.seedUser("stranger@example.com", false)
	id := s.createCompany(owner, "Acme Rockets")

	w, env := s.do(http.MethodGet, "/api/v1/companies/"+id, stranger, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Equal(s.T(), "AUTHORIZATION_ERROR", env.Code)
	assert.False(s.T(), env.Success)
}

func (s *CompanyHandlerSuite) TestGetAsSuperuserBypassesMembership() {
	owner := s.seedUser("owner@example.com", false)
	admin := s.seedUser("admin@example.com", true)
	id := s.createCompany(owner, "Acme Rockets")

	w, env := s.do(http.MethodGet, "/api/v1/companies/"+id, admin, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "COMPANY_RETRIEVED", env.Code)
}

func (s *CompanyHandlerSuite) TestDuplicateSlugConflict() {
	owner := s.seedUser("owner@example.com", false)
	s.createCompany(owner, "Acme Rockets")

	w, env := s.do(http.MethodPost, "/api/v1/companies/", owner, map[string]any{
		"name": "Different Name",
		"slug": "acme-rockets",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.Equal(s.T(), "CONFLICT", env.Code)
}

func (s *CompanyHandlerSuite) TestCreateWithoutName() {
	owner := s.seedUser("owner@example.com", false)

	w, env := s.do(http.MethodPost, "/api/v1/companies/", owner, map[string]any{})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", env.Code)
	require.NotEmpty(s.T(), env.Message)
}

func (s *CompanyHandlerSuite) TestListMine() {
	owner := s.seedUser("owner@example.com", false)
	other := s.seedUser("other@example.com", false)
	s.createCompany(owner, "Mine One")
	s.createCompany(owner, "Mine Two")
	s.createCompany(other, "Theirs")

	w, env := s.do(http.MethodGet, "/api/v1/companies/", owner, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "COMPANIES_RETRIEVED", env.Code)
	require.NotNil(s.T(), env.Pagination)
	assert.Equal(s.T(), 2, env.Pagination.TotalCount)

	var companies []map[string]any
	require.NoError(s.T(), json.Unmarshal(env.Data, &companies))
	assert.Len(s.T(), companies, 2)
}

func (s *CompanyHandlerSuite) TestGetWithBadID() {
	owner := s.seedUser("owner@example.com", false)

	w, env := s.do(http.MethodGet, "/api/v1/companies/not-a-uuid", owner, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "BAD_REQUEST", env.Code)
}

func (s *CompanyHandlerSuite) TestRoutesRequireAuth() {
	w, env := s.do(http.MethodGet, "/api/v1/companies/", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "AUTHENTICATION_ERROR", env.Code)
}

func TestCompanyHandlerSuite(t *testing.T) {
	suite.Run(t, new(CompanyHandlerSuite))
}
