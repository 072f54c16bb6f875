// Package store persists the per-guardian active dependent selection.
//
// Selection lifecycle: set at sign-in or when the guardian picks a child on
// the home screen, cleared at sign-out. The selection is ambient state owned
// here, outside the core operations that read it.
package store

import "context"

// SelectionStore records which dependent a guardian is currently acting on.
// ActiveDependent returns sentinel.ErrNotFound when no selection exists.
type SelectionStore interface {
	SetActiveDependent(ctx context.Context, guardianRUT, dependentRUT string) error
	ActiveDependent(ctx context.Context, guardianRUT string) (string, error)
	ClearActiveDependent(ctx context.Context, guardianRUT string) error
}
