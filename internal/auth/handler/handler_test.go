package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"talenthub/internal/auth/handler"
	"talenthub/internal/auth/password"
	"talenthub/internal/auth/service"
	userStore "talenthub/internal/auth/store/user"
	"talenthub/internal/auth/token"
	"talenthub/internal/platform/middleware"
)

// envelope mirrors the wire shape for assertions.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Success   bool            `json:"success"`
	Timestamp time.Time       `json:"timestamp"`
	Errors    []fieldError    `json:"errors"`
	Code      string          `json:"code"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// AuthHandlerSuite runs the auth endpoints end to end over a chi router with
// an in-memory store, a real hasher at minimum cost, and a real token service.
type AuthHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *AuthHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := userStore.NewInMemory()
	hasher := password.New(bcrypt.MinCost)
	tokens := token.New("test-signing-key", 30*time.Minute)

	svc, err := service.New(store, hasher, tokens, service.WithLogger(logger))
	require.NoError(s.T(), err)

	principal := middleware.RequirePrincipal(tokens, svc)

	s.router = chi.NewRouter()
	s.router.Route("/api/v1", func(r chi.Router) {
		handler.New(svc, logger, principal).Register(r)
	})
}

func (s *AuthHandlerSuite) do(method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (s *AuthHandlerSuite) register(email string) envelope {
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":      email,
		"password":   "long-enough-password",
		"first_name": "Jane",
		"last_name":  "Doe",
	}, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	return env
}

func (s *AuthHandlerSuite) login(email, pass string) (*httptest.ResponseRecorder, envelope) {
	return s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": pass,
	}, nil)
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	env := s.register("jane@example.com")

	assert.True(s.T(), env.Success)
	assert.Equal(s.T(), "USER_REGISTERED", env.Code)
	assert.Empty(s.T(), env.Errors)
	assert.False(s.T(), env.Timestamp.IsZero())

	var user map[string]any
	require.NoError(s.T(), json.Unmarshal(env.Data, &user))
	assert.Equal(s.T(), "jane@example.com", user["email"])
	assert.Equal(s.T(), true, user["active"])
	assert.NotContains(s.T(), string(env.Data), "password", "hash must not leak")
}

func (s *AuthHandlerSuite) TestRegisterNormalizesEmail() {
	s.register("  Jane@Example.COM  ")

	w, env := s.login("jane@example.com", "long-enough-password")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "LOGIN_SUCCESS", env.Code)
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmailConflict() {
	s.register("jane@example.com")

	w, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":      "JANE@example.com",
		"password":   "another-long-password",
		"first_name": "Jane",
		"last_name":  "Doe",
	}, nil)

	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.False(s.T(), env.Success)
	assert.Equal(s.T(), "CONFLICT", env.Code)
	assert.Empty(s.T(), env.Errors, "conflict carries no field errors")
}

func (s *AuthHandlerSuite) TestRegisterValidationErrors() {
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "not-an-email",
		"password": "short",
	}, nil)

	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", env.Code)
	assert.False(s.T(), env.Success)

	byField := map[string]string{}
	for _, fe := range env.Errors {
		byField[fe.Field] = fe.Code
	}
	assert.Equal(s.T(), "invalid", byField["email"])
	assert.Equal(s.T(), "too_short", byField["password"])
	assert.Equal(s.T(), "required", byField["first_name"])
	assert.Equal(s.T(), "required", byField["last_name"])
}

func (s *AuthHandlerSuite) TestRegisterMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"code":"BAD_REQUEST"`)
}

func (s *AuthHandlerSuite) TestLoginSuccess() {
	s.register("jane@example.com")

	w, env := s.login("jane@example.com", "long-enough-password")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "LOGIN_SUCCESS", env.Code)

	var payload struct {
		AccessToken string         `json:"access_token"`
		TokenType   string         `json:"token_type"`
		ExpiresIn   int            `json:"expires_in"`
		User        map[string]any `json:"user"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &payload))
	assert.NotEmpty(s.T(), payload.AccessToken)
	assert.Equal(s.T(), "bearer", payload.TokenType)
	assert.Equal(s.T(), 1800, payload.ExpiresIn)
	assert.Equal(s.T(), "jane@example.com", payload.User["email"])
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	s.register("jane@example.com")

	w, env := s.login("jane@example.com", "wrong-password-entirely")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "AUTHENTICATION_ERROR", env.Code)
	assert.Equal(s.T(), "incorrect email or password", env.Message)
}

func (s *AuthHandlerSuite) TestLoginUnknownEmailSameShape() {
	s.register("jane@example.com")

	_, wrongPass := s.login("jane@example.com", "wrong-password-entirely")
	_, unknown := s.login("nobody@example.com", "wrong-password-entirely")

	assert.Equal(s.T(), wrongPass.Code, unknown.Code)
	assert.Equal(s.T(), wrongPass.Message, unknown.Message)
}

func (s *AuthHandlerSuite) TestMeRoundTrip() {
	s.register("jane@example.com")
	_, loginEnv := s.login("jane@example.com", "long-enough-password")

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.T(), json.Unmarshal(loginEnv.Data, &payload))

	w, env := s.do(http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", payload.AccessToken),
	})
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "PROFILE_RETRIEVED", env.Code)
	assert.Contains(s.T(), string(env.Data), "jane@example.com")
}

func (s *AuthHandlerSuite) TestMeWithoutToken() {
	w, env := s.do(http.MethodGet, "/api/v1/auth/me", nil, nil)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "AUTHENTICATION_ERROR", env.Code)
	assert.Equal(s.T(), "missing credentials", env.Message)
}

func (s *AuthHandlerSuite) TestMeWithGarbageToken() {
	w, env := s.do(http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "AUTHENTICATION_ERROR", env.Code)
}

func (s *AuthHandlerSuite) TestLogout() {
	s.register("jane@example.com")
	_, loginEnv := s.login("jane@example.com", "long-enough-password")

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.T(), json.Unmarshal(loginEnv.Data, &payload))
	auth := map[string]string{"Authorization": "Bearer " + payload.AccessToken}

	w, env := s.do(http.MethodPost, "/api/v1/auth/logout", nil, auth)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "LOGOUT_SUCCESS", env.Code)

	// Stateless tokens stay valid after logout until they expire.
	w, _ = s.do(http.MethodGet, "/api/v1/auth/me", nil, auth)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}
