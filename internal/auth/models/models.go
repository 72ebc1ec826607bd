package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record behind every authenticated request. The auth
// core only reads it; mutation is owned by the user service and stores.
type User struct {
	ID                uuid.UUID
	Email             string
	FirstName         string
	LastName          string
	Username          string
	PhoneNumber       string
	Timezone          string
	ProfilePictureURL string
	HashedPassword    string
	Active            bool
	Verified          bool
	Superuser         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u != nil && u.Active
}
