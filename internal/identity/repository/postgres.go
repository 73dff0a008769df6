// Package repository provides the registration unit of work: the user, the
// default organisation, and the membership linking them are created in a
// single transaction.
package repository

import (
	"context"
	"database/sql"

	"org-membership-backend/internal/db"
	membershipdomain "org-membership-backend/internal/membership/domain"
	membershiprepo "org-membership-backend/internal/membership/repository"
	organizationdomain "org-membership-backend/internal/organization/domain"
	organizationrepo "org-membership-backend/internal/organization/repository"
	userdomain "org-membership-backend/internal/user/domain"
	userrepo "org-membership-backend/internal/user/repository"
)

type PostgresStore struct {
	db          *sql.DB
	users       *userrepo.PostgresRepository
	orgs        *organizationrepo.PostgresRepository
	memberships *membershiprepo.PostgresRepository
}

// NewPostgresStore returns a registration store over the given database.
func NewPostgresStore(d *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:          d,
		users:       userrepo.NewPostgresRepository(d),
		orgs:        organizationrepo.NewPostgresRepository(d),
		memberships: membershiprepo.NewPostgresRepository(d),
	}
}

// GetUserByEmail returns the user with the given email, or nil if not found.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// CreateAccount creates the user, organisation, and membership in one
// transaction: on any failure all three roll back and nothing is visible.
// Returns userrepo.ErrDuplicateEmail when a concurrent registration won the
// users_email_key constraint.
func (s *PostgresStore) CreateAccount(ctx context.Context, u *userdomain.User, o *organizationdomain.Org, m *membershipdomain.Membership) error {
	return db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			return err
		}
		if err := s.orgs.WithTx(tx).Create(ctx, o); err != nil {
			return err
		}
		return s.memberships.WithTx(tx).Create(ctx, m)
	})
}
