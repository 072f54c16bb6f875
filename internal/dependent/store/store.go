// Package store persists dependent records.
package store

import (
	"context"

	"rutasegura/internal/dependent/models"
)

// Store is the dependents collection. FindByRUT returns
// sentinel.ErrNotFound when no record exists.
type Store interface {
	FindByRUT(ctx context.Context, rut string) (*models.Dependent, error)
	ListByGuardian(ctx context.Context, guardianRUT string) ([]*models.Dependent, error)
}
