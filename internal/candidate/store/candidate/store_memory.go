package candidate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"talenthub/internal/candidate/models"
	"talenthub/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrAlreadyExists (wrapped) on unique constraint conflicts
// - Return nil for successful operations

// InMemoryStore stores candidates in memory for tests and local development.
type InMemoryStore struct {
	mu         sync.RWMutex
	candidates map[uuid.UUID]*models.Candidate
}

// NewInMemory constructs an empty in-memory candidate store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{candidates: make(map[uuid.UUID]*models.Candidate)}
}

func clone(c *models.Candidate) *models.Candidate {
	cp := *c
	cp.PreferredLocations = append([]string(nil), c.PreferredLocations...)
	return &cp
}

func (s *InMemoryStore) Create(_ context.Context, candidate *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.candidates {
		if strings.EqualFold(existing.Email, candidate.Email) {
			return fmt.Errorf("candidate email taken: %w", sentinel.ErrAlreadyExists)
		}
	}
	s.candidates[candidate.ID] = clone(candidate)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, candidate *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidate.ID]; !ok {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	s.candidates[candidate.ID] = clone(candidate)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if candidate, ok := s.candidates[id]; ok {
		return clone(candidate), nil
	}
	return nil, fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
}

// matches reports whether the candidate matches the search term over name,
// email, title and company, case-insensitively.
func matches(c *models.Candidate, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, field := range []string{c.FirstName, c.LastName, c.Email, c.CurrentTitle, c.CurrentCompany} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// List returns candidates matching the optional search term, ordered by
// creation time (then email for stability).
func (s *InMemoryStore) List(_ context.Context, search string, offset, limit int) ([]*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		if matches(candidate, search) {
			all = append(all, clone(candidate))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Email < all[j].Email
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.Candidate{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *InMemoryStore) Count(_ context.Context, search string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, candidate := range s.candidates {
		if matches(candidate, search) {
			count++
		}
	}
	return count, nil
}
