package store

import (
	"context"
	"sync"

	"rutasegura/pkg/platform/sentinel"
)

// InMemory keeps selections in a mutex-guarded map. Suitable for a single
// instance and for tests; production deployments use the Redis store.
type InMemory struct {
	mu         sync.RWMutex
	selections map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{selections: make(map[string]string)}
}

func (s *InMemory) SetActiveDependent(ctx context.Context, guardianRUT, dependentRUT string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[guardianRUT] = dependentRUT
	return nil
}

func (s *InMemory) ActiveDependent(ctx context.Context, guardianRUT string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rut, ok := s.selections[guardianRUT]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return rut, nil
}

func (s *InMemory) ClearActiveDependent(ctx context.Context, guardianRUT string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, guardianRUT)
	return nil
}
