package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

type HTTPUtilSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilSuite))
}

// decodeEnvelope asserts the body is a well-formed envelope and returns it as a map.
func (s *HTTPUtilSuite) decodeEnvelope(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"data", "message", "success", "timestamp", "errors", "code"} {
		s.Contains(body, key)
	}
	return body
}

func (s *HTTPUtilSuite) TestWriteSuccessShape() {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusOK, "LOGIN_SUCCESS", "Login successful", map[string]string{"token": "abc"})

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	body := s.decodeEnvelope(rec)
	s.Equal(true, body["success"])
	s.Equal("LOGIN_SUCCESS", body["code"])
	s.Equal("Login successful", body["message"])
	s.NotNil(body["data"])
	// errors must serialize as an empty list, never null
	s.Equal([]any{}, body["errors"])
}

func (s *HTTPUtilSuite) TestWritePageIncludesMeta() {
	rec := httptest.NewRecorder()
	meta := pagination.New(1, 20).MetaFor(3)
	WritePage(rec, "USERS_RETRIEVED", "Users retrieved successfully", []string{"a", "b", "c"}, meta)

	body := s.decodeEnvelope(rec)
	s.Equal(true, body["success"])
	pg, ok := body["pagination"].(map[string]any)
	s.Require().True(ok)
	s.Equal(float64(3), pg["total_count"])
	s.Equal(float64(1), pg["total_pages"])
}

func (s *HTTPUtilSuite) TestWriteErrorDomainCodes() {
	cases := []struct {
		code       dErrors.Code
		wantStatus int
		wantWire   string
	}{
		{dErrors.CodeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{dErrors.CodeValidation, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{dErrors.CodeAuthentication, http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{dErrors.CodeAuthorization, http.StatusForbidden, "AUTHORIZATION_ERROR"},
		{dErrors.CodeConflict, http.StatusConflict, "CONFLICT"},
		{dErrors.CodeBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{dErrors.CodeDatabase, http.StatusInternalServerError, "DATABASE_ERROR"},
		{dErrors.CodeInternal, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		s.Run(string(tc.code), func() {
			rec := httptest.NewRecorder()
			WriteError(rec, dErrors.New(tc.code, "boom"))

			s.Equal(tc.wantStatus, rec.Code)
			body := s.decodeEnvelope(rec)
			s.Equal(false, body["success"])
			s.Equal(tc.wantWire, body["code"])
			s.Nil(body["data"])
		})
	}
}

func (s *HTTPUtilSuite) TestWriteErrorNeverLeaksInternalDetail() {
	s.Run("database errors get a fixed message", func() {
		rec := httptest.NewRecorder()
		WriteError(rec, dErrors.Wrap(errors.New(`pq: relation "users" does not exist`), dErrors.CodeDatabase, "query users"))

		body := s.decodeEnvelope(rec)
		s.Equal("database operation failed", body["message"])
		s.NotContains(rec.Body.String(), "relation")
	})

	s.Run("non-domain errors fall through to internal", func() {
		rec := httptest.NewRecorder()
		WriteError(rec, errors.New("nil pointer dereference"))

		s.Equal(http.StatusInternalServerError, rec.Code)
		body := s.decodeEnvelope(rec)
		s.Equal("INTERNAL_ERROR", body["code"])
		s.Equal("an unexpected error occurred", body["message"])
		s.NotContains(rec.Body.String(), "nil pointer")
	})
}

func (s *HTTPUtilSuite) TestWriteErrorValidationFields() {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.NewValidation("validation failed",
		dErrors.FieldError{Field: "password", Message: "must be at least 8 characters", Code: "too_short"},
		dErrors.FieldError{Field: "email", Message: "invalid email address", Code: "invalid_email"},
	))

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	body := s.decodeEnvelope(rec)
	errs, ok := body["errors"].([]any)
	s.Require().True(ok)
	s.Len(errs, 2)
	first := errs[0].(map[string]any)
	s.Equal("password", first["field"])
	s.Equal("too_short", first["code"])
}

func (s *HTTPUtilSuite) TestStatusForCodeIsTotal() {
	// Unmapped codes must default to 500, never panic.
	s.Equal(http.StatusInternalServerError, StatusForCode(dErrors.Code("no_such_code")))
	s.Equal("INTERNAL_ERROR", WireCode(dErrors.Code("no_such_code")))
}
