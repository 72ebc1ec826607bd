// Package models defines the candidate profile aggregate.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Remote work preferences accepted on candidate profiles.
const (
	RemoteWorkRemote = "remote"
	RemoteWorkHybrid = "hybrid"
	RemoteWorkOnsite = "onsite"
	RemoteWorkAny    = "any"
)

// ValidRemoteWorkPreference reports whether the value is one of the accepted
// preferences.
func ValidRemoteWorkPreference(v string) bool {
	switch v {
	case RemoteWorkRemote, RemoteWorkHybrid, RemoteWorkOnsite, RemoteWorkAny:
		return true
	}
	return false
}

// Availability statuses tracked on candidate profiles.
const (
	AvailabilityAvailable    = "available"
	AvailabilityInterviewing = "interviewing"
	AvailabilityHired        = "hired"
	AvailabilityNotLooking   = "not_looking"
)

// Candidate is a recruitable profile.
type Candidate struct {
	ID                     uuid.UUID
	FirstName              string
	LastName               string
	Email                  string
	PhoneNumber            string
	LinkedinURL            string
	GithubURL              string
	PortfolioURL           string
	CurrentTitle           string
	CurrentCompany         string
	YearsOfExperience      float64
	ExpectedSalaryMin      int
	ExpectedSalaryMax      int
	PreferredLocations     []string
	RemoteWorkPreference   string
	Summary                string
	ProfileCompletionScore float64
	AvailabilityStatus     string
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
