package repository

import (
	"context"
	"database/sql"
	"errors"

	"org-membership-backend/internal/db"
	"org-membership-backend/internal/membership/domain"
)

type PostgresRepository struct {
	q db.Querier
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
func NewPostgresRepository(d *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: d}
}

// WithTx returns a copy of the repository bound to tx.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

// GetByUserAndOrg returns the membership for the given user and org, or nil
// if not found. It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, org_id, created_at FROM memberships WHERE user_id = $1 AND org_id = $2`,
		userID, orgID)
	var m domain.Membership
	if err := row.Scan(&m.ID, &m.UserID, &m.OrgID, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListByUser returns all memberships for the given user, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.list(ctx,
		`SELECT id, user_id, org_id, created_at FROM memberships WHERE user_id = $1 ORDER BY created_at`,
		userID)
}

// ListByOrg returns all memberships for the given org, oldest first.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Membership, error) {
	return r.list(ctx,
		`SELECT id, user_id, org_id, created_at FROM memberships WHERE org_id = $1 ORDER BY created_at`,
		orgID)
}

// Create persists the membership. The membership must have ID set. Returns
// ErrDuplicateMembership on a memberships_user_org_key violation so a
// race-losing insert surfaces as the same conflict as a pre-check failure.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Membership) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, org_id, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.UserID, m.OrgID, m.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err, "memberships_user_org_key") {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.OrgID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
