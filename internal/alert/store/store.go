// Package store persists Alert records. The collection is append-only:
// there is deliberately no update or delete path.
package store

import (
	"context"

	"rutasegura/internal/alert/models"
)

// Filter narrows a Query with at most two equality predicates, which is the
// whole query surface the document collection supports. No range or
// inequality predicates exist; recency is handled by the feed pipeline.
type Filter struct {
	// Kind matches the alert kind exactly when non-empty.
	Kind string
	// DriverRUT matches the addressed driver exactly when non-empty. Used
	// by the postulation feed.
	DriverRUT string
}

// Store is the durable alert collection. Query returns a fresh snapshot on
// every call; there is no subscription and no local caching.
type Store interface {
	Append(ctx context.Context, alert *models.Alert) error
	Query(ctx context.Context, filter Filter) ([]*models.Alert, error)
}
