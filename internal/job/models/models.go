// Package models defines the job posting aggregate.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Employment types accepted on job postings.
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// ValidEmploymentType reports whether the value is one of the accepted types.
func ValidEmploymentType(v string) bool {
	switch v {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// Job posting statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

// Job is a position posted by a company.
type Job struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType string
	SalaryMin      int
	SalaryMax      int
	RemoteAllowed  bool
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
