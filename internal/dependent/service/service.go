// Package service exposes dependent lookups to handlers and to the alert
// flow, which only needs a display name for the emergency-contact text.
package service

import (
	"context"
	"errors"
	"log/slog"

	"rutasegura/internal/dependent/models"
	dErrors "rutasegura/pkg/domain-errors"
	"rutasegura/pkg/platform/sentinel"
)

// Store is the persistence surface the service needs.
type Store interface {
	FindByRUT(ctx context.Context, rut string) (*models.Dependent, error)
	ListByGuardian(ctx context.Context, guardianRUT string) ([]*models.Dependent, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the dependent record for a RUT.
func (s *Service) Get(ctx context.Context, rut string) (*models.Dependent, error) {
	if rut == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "dependent rut is required")
	}
	d, err := s.store.FindByRUT(ctx, rut)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "dependent not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "fetching dependent")
	}
	return d, nil
}

// ListByGuardian returns every dependent registered under a guardian.
// An unknown guardian yields an empty list, not an error.
func (s *Service) ListByGuardian(ctx context.Context, guardianRUT string) ([]*models.Dependent, error) {
	if guardianRUT == "" {
		return nil, dErrors.New(dErrors.CodeMissingIdentity, "guardian rut is required")
	}
	list, err := s.store.ListByGuardian(ctx, guardianRUT)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "listing dependents")
	}
	return list, nil
}

// DisplayName resolves the short name used in alert text. Lookup failures
// surface as errors so the caller can fall back to generic wording.
func (s *Service) DisplayName(ctx context.Context, rut string) (string, error) {
	d, err := s.Get(ctx, rut)
	if err != nil {
		return "", err
	}
	return d.DisplayName(), nil
}
