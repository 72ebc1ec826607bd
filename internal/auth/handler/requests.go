package handler

import (
	"net/mail"
	"strings"

	dErrors "talenthub/pkg/domain-errors"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Username = strings.TrimSpace(r.Username)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Timezone = strings.TrimSpace(r.Timezone)
}

const minPasswordLength = 8

func (r *RegisterRequest) Validate() error {
	var fields []dErrors.FieldError

	switch {
	case r.Email == "":
		fields = append(fields, dErrors.FieldError{Field: "email", Message: "email is required", Code: "required"})
	case !validEmail(r.Email):
		fields = append(fields, dErrors.FieldError{Field: "email", Message: "email is not a valid address", Code: "invalid"})
	}
	switch {
	case r.Password == "":
		fields = append(fields, dErrors.FieldError{Field: "password", Message: "password is required", Code: "required"})
	case len(r.Password) < minPasswordLength:
		fields = append(fields, dErrors.FieldError{Field: "password", Message: "password must be at least 8 characters", Code: "too_short"})
	}
	if r.FirstName == "" {
		fields = append(fields, dErrors.FieldError{Field: "first_name", Message: "first name is required", Code: "required"})
	}
	if r.LastName == "" {
		fields = append(fields, dErrors.FieldError{Field: "last_name", Message: "last name is required", Code: "required"})
	}

	if len(fields) > 0 {
		return dErrors.NewValidation("registration request is invalid", fields...)
	}
	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	var fields []dErrors.FieldError
	if r.Email == "" {
		fields = append(fields, dErrors.FieldError{Field: "email", Message: "email is required", Code: "required"})
	}
	if r.Password == "" {
		fields = append(fields, dErrors.FieldError{Field: "password", Message: "password is required", Code: "required"})
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("login request is invalid", fields...)
	}
	return nil
}

func validEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}
