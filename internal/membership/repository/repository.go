package repository

import (
	"context"
	"errors"

	"org-membership-backend/internal/membership/domain"
)

// ErrDuplicateMembership is returned by Create when a membership for the same
// (user, org) pair already exists. The memberships_user_org_key constraint
// guarantees this even when two adds race past the pre-check.
var ErrDuplicateMembership = errors.New("user is already a member of the organisation")

// Repository defines persistence for memberships. There is no update or
// delete: memberships are immutable once created.
type Repository interface {
	GetByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.Membership, error)
	Create(ctx context.Context, m *domain.Membership) error
}
