package handler

import (
	"time"

	"talenthub/internal/auth/models"
)

// UserResponse is the public projection of a user account. The password hash
// never appears in any response.
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Username          string    `json:"username,omitempty"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	Timezone          string    `json:"timezone,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Active            bool      `json:"active"`
	Verified          bool      `json:"verified"`
	Superuser         bool      `json:"superuser"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewUserResponse projects a user model onto the wire shape.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Username:          user.Username,
		PhoneNumber:       user.PhoneNumber,
		Timezone:          user.Timezone,
		ProfilePictureURL: user.ProfilePictureURL,
		Active:            user.Active,
		Verified:          user.Verified,
		Superuser:         user.Superuser,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// TokenResponse is the login payload: an OAuth-style bearer token plus the
// authenticated user.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}
