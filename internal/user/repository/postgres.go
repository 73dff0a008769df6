package repository

import (
	"context"
	"database/sql"
	"errors"

	"org-membership-backend/internal/db"
	"org-membership-backend/internal/user/domain"
)

type PostgresRepository struct {
	q db.Querier
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(d *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: d}
}

// WithTx returns a copy of the repository bound to tx.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, created_at, updated_at`

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email (case-sensitive exact
// match), or nil if not found. It returns an error only for database failures.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned by
// this method. Returns ErrDuplicateEmail on a users_email_key violation.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	phone := sql.NullString{String: u.Phone, Valid: u.Phone != ""}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, phone, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var phone sql.NullString
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	return &u, nil
}
