// Package models defines the company aggregate and its membership records.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer account that owns job postings.
type Company struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Website      string
	Industry     string
	Size         string
	Headquarters string
	FoundedYear  int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Membership roles. Owners are members with administrative intent; the
// authorization gate only cares about membership itself.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Membership links a user to a company.
type Membership struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      string
	CreatedAt time.Time
}
