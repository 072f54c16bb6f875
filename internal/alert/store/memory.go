package store

import (
	"context"
	"sync"

	"rutasegura/internal/alert/models"
)

// InMemory implements Store with a mutex-guarded slice. Used in tests and
// single-instance development runs; production uses the Postgres store.
type InMemory struct {
	mu     sync.RWMutex
	alerts []*models.Alert
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(ctx context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *alert
	s.alerts = append(s.alerts, &copied)
	return nil
}

func (s *InMemory) Query(ctx context.Context, filter Filter) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if filter.Kind != "" && a.Kind != filter.Kind {
			continue
		}
		if filter.DriverRUT != "" && a.DriverRUT != filter.DriverRUT {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}
