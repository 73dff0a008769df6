package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"org-membership-backend/internal/db"
	"org-membership-backend/internal/organization/domain"
)

type PostgresRepository struct {
	q db.Querier
}

// NewPostgresRepository returns an organisation repository that uses the given db for persistence.
func NewPostgresRepository(d *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: d}
}

// WithTx returns a copy of the repository bound to tx.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

// GetByID returns the organisation for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Org, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM organisations WHERE id = $1`, id)
	var o domain.Org
	var desc sql.NullString
	if err := row.Scan(&o.ID, &o.Name, &desc, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if desc.Valid {
		o.Description = desc.String
	}
	return &o, nil
}

// ListByIDs returns the organisations whose IDs appear in ids, in the order
// the database returns them. Unknown IDs are skipped, not an error.
func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Org, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT id, name, description, created_at FROM organisations WHERE id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY created_at`
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Org
	for rows.Next() {
		var o domain.Org
		var desc sql.NullString
		if err := rows.Scan(&o.ID, &o.Name, &desc, &o.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			o.Description = desc.String
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// Create persists the organisation. The org must have ID set; it is not
// assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, o *domain.Org) error {
	desc := sql.NullString{String: o.Description, Valid: o.Description != ""}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO organisations (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		o.ID, o.Name, desc, o.CreatedAt,
	)
	return err
}
