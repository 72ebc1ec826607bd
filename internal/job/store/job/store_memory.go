package job

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"talenthub/internal/job/models"
	"talenthub/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return nil for successful operations

// InMemoryStore stores jobs in memory for tests and local development.
type InMemoryStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*models.Job
}

// NewInMemory constructs an empty in-memory job store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{jobs: make(map[uuid.UUID]*models.Job)}
}

func (s *InMemoryStore) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return fmt.Errorf("job not found: %w", sentinel.ErrNotFound)
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if job, ok := s.jobs[id]; ok {
		cp := *job
		return &cp, nil
	}
	return nil, fmt.Errorf("job not found: %w", sentinel.ErrNotFound)
}

// List returns jobs ordered by creation time (then id for stability).
func (s *InMemoryStore) List(_ context.Context, offset, limit int) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.Job{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs), nil
}
