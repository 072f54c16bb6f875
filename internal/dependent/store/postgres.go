package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rutasegura/internal/dependent/models"
	"rutasegura/pkg/platform/sentinel"
)

// Postgres stores each dependent as one JSONB document keyed by RUT.
// The collection predates this service, so reads tolerate legacy field
// names via the model decoder.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the dependents table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dependents (
			rut TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure dependents schema: %w", err)
	}
	return nil
}

func (s *Postgres) FindByRUT(ctx context.Context, rut string) (*models.Dependent, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM dependents WHERE rut = $1`, rut).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dependent: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	var d models.Dependent
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decode dependent: %w", err)
	}
	if d.RUT == "" {
		d.RUT = rut
	}
	return &d, nil
}

func (s *Postgres) ListByGuardian(ctx context.Context, guardianRUT string) ([]*models.Dependent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM dependents
		WHERE doc->>'guardianId' = $1 OR doc->>'rutUsuario' = $1 OR doc->>'rutApoderado' = $1`,
		guardianRUT)
	if err != nil {
		return nil, fmt.Errorf("list dependents: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer rows.Close()

	var out []*models.Dependent
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan dependent: %w", errors.Join(sentinel.ErrUnavailable, err))
		}
		var d models.Dependent
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("decode dependent: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dependents: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return out, nil
}
