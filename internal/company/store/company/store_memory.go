package company

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"talenthub/internal/company/models"
	"talenthub/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrAlreadyExists (wrapped) on unique constraint conflicts
// - Return nil for successful operations

type membershipKey struct {
	companyID uuid.UUID
	userID    uuid.UUID
}

// InMemoryStore stores companies and memberships in memory for tests and
// local development.
type InMemoryStore struct {
	mu          sync.RWMutex
	companies   map[uuid.UUID]*models.Company
	memberships map[membershipKey]*models.Membership
}

// NewInMemory constructs an empty in-memory company store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		companies:   make(map[uuid.UUID]*models.Company),
		memberships: make(map[membershipKey]*models.Membership),
	}
}

// Create inserts the company and its owner membership together.
func (s *InMemoryStore) Create(_ context.Context, company *models.Company, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.companies {
		if strings.EqualFold(existing.Slug, company.Slug) {
			return fmt.Errorf("company slug taken: %w", sentinel.ErrAlreadyExists)
		}
	}
	cp := *company
	s.companies[company.ID] = &cp
	s.memberships[membershipKey{company.ID, ownerID}] = &models.Membership{
		CompanyID: company.ID,
		UserID:    ownerID,
		Role:      models.RoleOwner,
		CreatedAt: company.CreatedAt,
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if company, ok := s.companies[id]; ok {
		cp := *company
		return &cp, nil
	}
	return nil, fmt.Errorf("company not found: %w", sentinel.ErrNotFound)
}

// AddMember records a membership. Adding an existing member is a conflict.
func (s *InMemoryStore) AddMember(_ context.Context, companyID, userID uuid.UUID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[companyID]; !ok {
		return fmt.Errorf("company not found: %w", sentinel.ErrNotFound)
	}
	key := membershipKey{companyID, userID}
	if _, ok := s.memberships[key]; ok {
		return fmt.Errorf("member already present: %w", sentinel.ErrAlreadyExists)
	}
	s.memberships[key] = &models.Membership{
		CompanyID: companyID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *InMemoryStore) IsMember(_ context.Context, companyID, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.memberships[membershipKey{companyID, userID}]
	return ok, nil
}

// ListForUser returns the companies the user belongs to, ordered by creation
// time (then slug for stability).
func (s *InMemoryStore) ListForUser(_ context.Context, userID uuid.UUID, offset, limit int) ([]*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member := make([]*models.Company, 0)
	for key, m := range s.memberships {
		if m.UserID != userID {
			continue
		}
		if company, ok := s.companies[key.companyID]; ok {
			cp := *company
			member = append(member, &cp)
		}
	}
	sort.Slice(member, func(i, j int) bool {
		if member[i].CreatedAt.Equal(member[j].CreatedAt) {
			return member[i].Slug < member[j].Slug
		}
		return member[i].CreatedAt.Before(member[j].CreatedAt)
	})

	if offset >= len(member) {
		return []*models.Company{}, nil
	}
	end := offset + limit
	if end > len(member) {
		end = len(member)
	}
	return member[offset:end], nil
}

func (s *InMemoryStore) CountForUser(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.memberships {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}
