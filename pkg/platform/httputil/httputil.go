package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/pagination"
)

// Envelope is the uniform wrapper around every API response, success or failure.
// Every endpoint writes exactly this shape; nothing below the HTTP boundary
// formats a response directly.
type Envelope struct {
	Data       any                  `json:"data"`
	Pagination *pagination.Meta     `json:"pagination,omitempty"`
	Message    string               `json:"message"`
	Success    bool                 `json:"success"`
	Timestamp  time.Time            `json:"timestamp"`
	Errors     []dErrors.FieldError `json:"errors"`
	Code       string               `json:"code"`
}

// WriteJSON writes a raw JSON response without the envelope. Reserved for
// infrastructure endpoints (health probes); API handlers use the envelope writers.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	if env.Errors == nil {
		env.Errors = []dErrors.FieldError{}
	}
	env.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	// The response body may be incomplete, but headers are already sent.
	_ = json.NewEncoder(w).Encode(env)
}

// WriteSuccess writes a success envelope around data.
func WriteSuccess(w http.ResponseWriter, status int, code, message string, data any) {
	writeEnvelope(w, status, Envelope{
		Data:    data,
		Message: message,
		Success: true,
		Code:    code,
	})
}

// WritePage writes a success envelope around a page of data with page metadata.
func WritePage(w http.ResponseWriter, code, message string, data any, meta pagination.Meta) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Data:       data,
		Pagination: &meta,
		Message:    message,
		Success:    true,
		Code:       code,
	})
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// error envelopes. Non-domain errors (and database errors) are returned with a
// fixed safe message; callers are expected to have logged the detail already.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		writeEnvelope(w, http.StatusInternalServerError, Envelope{
			Message: "an unexpected error occurred",
			Code:    WireCode(dErrors.CodeInternal),
		})
		return
	}

	message := domainErr.Message
	switch domainErr.Code {
	case dErrors.CodeDatabase:
		// Never leak schema or query detail to the caller.
		message = "database operation failed"
	case dErrors.CodeInternal:
		message = "an unexpected error occurred"
	}

	writeEnvelope(w, StatusForCode(domainErr.Code), Envelope{
		Message: message,
		Errors:  domainErr.Fields,
		Code:    WireCode(domainErr.Code),
	})
}

// StatusForCode translates domain error codes to HTTP status codes.
// The mapping is total: unmapped codes fall through to 500.
func StatusForCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeAuthentication:
		return http.StatusUnauthorized
	case dErrors.CodeAuthorization:
		return http.StatusForbidden
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeDatabase, dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WireCode translates domain error codes to the stable machine-readable codes
// carried in the envelope.
func WireCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "NOT_FOUND"
	case dErrors.CodeBadRequest:
		return "BAD_REQUEST"
	case dErrors.CodeValidation:
		return "VALIDATION_ERROR"
	case dErrors.CodeAuthentication:
		return "AUTHENTICATION_ERROR"
	case dErrors.CodeAuthorization:
		return "AUTHORIZATION_ERROR"
	case dErrors.CodeConflict:
		return "CONFLICT"
	case dErrors.CodeDatabase:
		return "DATABASE_ERROR"
	case dErrors.CodeInternal:
		return "INTERNAL_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
