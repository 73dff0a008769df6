package repository

import (
	"context"
	"database/sql"

	"org-membership-backend/internal/db"
	membershipdomain "org-membership-backend/internal/membership/domain"
	membershiprepo "org-membership-backend/internal/membership/repository"
	"org-membership-backend/internal/organization/domain"
)

// PostgresStore extends the organisation repository with the create-with-founder
// unit of work: a new organisation and its creator's membership are persisted
// in a single transaction, mirroring the registration flow's atomicity.
type PostgresStore struct {
	*PostgresRepository
	db          *sql.DB
	memberships *membershiprepo.PostgresRepository
}

// NewPostgresStore returns an organisation store over the given database.
func NewPostgresStore(d *sql.DB) *PostgresStore {
	return &PostgresStore{
		PostgresRepository: NewPostgresRepository(d),
		db:                 d,
		memberships:        membershiprepo.NewPostgresRepository(d),
	}
}

// CreateWithFounder creates the organisation and the founding membership in
// one transaction: on any failure both roll back.
func (s *PostgresStore) CreateWithFounder(ctx context.Context, o *domain.Org, m *membershipdomain.Membership) error {
	return db.InTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.PostgresRepository.WithTx(tx).Create(ctx, o); err != nil {
			return err
		}
		return s.memberships.WithTx(tx).Create(ctx, m)
	})
}
