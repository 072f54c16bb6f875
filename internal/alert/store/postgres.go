package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rutasegura/internal/alert/models"
	"rutasegura/pkg/platform/sentinel"
)

// Postgres stores each alert as one JSONB document, mirroring the document
// collection this service fronts. Writes use the canonical field names; the
// collection still holds legacy-named documents from older producers, so
// predicates and decoding accept both dialects.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the alerts table when missing. Called at startup and
// from integration tests; a no-op when the table exists.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS alerts (
			id  UUID PRIMARY KEY,
			doc JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure alerts schema: %w", err)
	}
	return nil
}

func (s *Postgres) Append(ctx context.Context, alert *models.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	doc, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO alerts (id, doc) VALUES ($1, $2)`, alert.ID, doc); err != nil {
		return fmt.Errorf("append alert: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}

func (s *Postgres) Query(ctx context.Context, filter Filter) ([]*models.Alert, error) {
	query := `SELECT doc FROM alerts`
	var (
		clauses []string
		args    []any
	)
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(doc->>'kind' = $%d OR doc->>'tipoAlerta' = $%d)", n, n))
	}
	if filter.DriverRUT != "" {
		args = append(args, filter.DriverRUT)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(doc->>'driverId' = $%d OR doc->>'rutConductor' = $%d)", n, n))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer rows.Close()

	var out []*models.Alert
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan alert: %w", errors.Join(sentinel.ErrUnavailable, err))
		}
		var a models.Alert
		if err := json.Unmarshal(doc, &a); err != nil {
			return nil, fmt.Errorf("decode alert: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return out, nil
}
