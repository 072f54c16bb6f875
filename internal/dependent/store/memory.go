package store

import (
	"context"
	"sync"

	"rutasegura/internal/dependent/models"
	"rutasegura/pkg/platform/sentinel"
)

// InMemory implements Store with a mutex-guarded map keyed by RUT.
type InMemory struct {
	mu         sync.RWMutex
	dependents map[string]*models.Dependent
}

func NewInMemory() *InMemory {
	return &InMemory{dependents: make(map[string]*models.Dependent)}
}

// Put seeds a record. Upload flows live outside this service, so only
// tests and fixtures call this.
func (s *InMemory) Put(ctx context.Context, d *models.Dependent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *d
	s.dependents[d.RUT] = &copied
	return nil
}

func (s *InMemory) FindByRUT(ctx context.Context, rut string) (*models.Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dependents[rut]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *InMemory) ListByGuardian(ctx context.Context, guardianRUT string) ([]*models.Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Dependent
	for _, d := range s.dependents {
		if d.GuardianRUT == guardianRUT {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}
