// Package access computes allow/deny decisions for every cross-entity read and
// write. Decisions consult the membership index; existence is always checked
// before membership so unknown IDs surface as not-found rather than forbidden.
package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	membershipdomain "org-membership-backend/internal/membership/domain"
	membershiprepo "org-membership-backend/internal/membership/repository"
	organizationdomain "org-membership-backend/internal/organization/domain"
	"org-membership-backend/internal/platform/apperror"
	userdomain "org-membership-backend/internal/user/domain"
)

// Sentinel errors for access decisions; handlers map them to HTTP statuses.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrOrgNotFound   = errors.New("organisation not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyMember = errors.New("user is already a member of the organisation")
)

// UserGetter is the minimal user lookup needed by the access service.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// OrgStore is the minimal organisation persistence needed by the access service.
type OrgStore interface {
	GetByID(ctx context.Context, id string) (*organizationdomain.Org, error)
	ListByIDs(ctx context.Context, ids []string) ([]*organizationdomain.Org, error)
	CreateWithFounder(ctx context.Context, o *organizationdomain.Org, m *membershipdomain.Membership) error
}

// MembershipStore is the membership index as seen by the access service.
type MembershipStore interface {
	GetByUserAndOrg(ctx context.Context, userID, orgID string) (*membershipdomain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*membershipdomain.Membership, error)
	Create(ctx context.Context, m *membershipdomain.Membership) error
}

// Service makes authorization decisions and, on allow, returns the requested
// data. It holds no state beyond its repositories; every decision is a fresh lookup.
type Service struct {
	users       UserGetter
	orgs        OrgStore
	memberships MembershipStore
}

// NewService returns an access service over the given repositories.
func NewService(users UserGetter, orgs OrgStore, memberships MembershipStore) *Service {
	return &Service{
		users:       users,
		orgs:        orgs,
		memberships: memberships,
	}
}

// GetUserProfile returns the target user if the caller may see them: a user
// may always read their own profile; reading another user requires at least
// one shared organisation (full set intersection, not first-membership-found).
func (s *Service) GetUserProfile(ctx context.Context, callerID, targetID string) (*userdomain.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if callerID == targetID {
		return target, nil
	}

	callerOrgs, err := s.orgIDSet(ctx, callerID)
	if err != nil {
		return nil, err
	}
	targetMemberships, err := s.memberships.ListByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	for _, m := range targetMemberships {
		if callerOrgs[m.OrgID] {
			return target, nil
		}
	}
	return nil, ErrForbidden
}

// ListOrganisations returns every organisation the caller belongs to.
func (s *Service) ListOrganisations(ctx context.Context, callerID string) ([]*organizationdomain.Org, error) {
	memberships, err := s.memberships.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(memberships))
	for i, m := range memberships {
		ids[i] = m.OrgID
	}
	return s.orgs.ListByIDs(ctx, ids)
}

// GetOrganisation returns the organisation if the caller is a member of it.
func (s *Service) GetOrganisation(ctx context.Context, callerID, orgID string) (*organizationdomain.Org, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}
	m, err := s.memberships.GetByUserAndOrg(ctx, callerID, orgID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrForbidden
	}
	return org, nil
}

// CreateOrganisation creates an organisation with the caller as its first
// member. Name is required; description is optional.
func (s *Service) CreateOrganisation(ctx context.Context, callerID, name, description string) (*organizationdomain.Org, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation(apperror.FieldError{Field: "name", Message: "Name is required"})
	}

	now := time.Now().UTC()
	org := &organizationdomain.Org{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
	}
	membership := &membershipdomain.Membership{
		ID:        uuid.New().String(),
		UserID:    callerID,
		OrgID:     org.ID,
		CreatedAt: now,
	}
	if err := s.orgs.CreateWithFounder(ctx, org, membership); err != nil {
		return nil, err
	}
	return org, nil
}

// AddMember adds userID to orgID. The caller must be a member of the org; the
// org and the target user must exist; the pair must not already be linked.
// The duplicate pre-check is advisory: a race-losing insert surfaces as the
// same ErrAlreadyMember via the unique constraint.
func (s *Service) AddMember(ctx context.Context, callerID, orgID, userID string) (*membershipdomain.Membership, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrgNotFound
	}

	callerMembership, err := s.memberships.GetByUserAndOrg(ctx, callerID, orgID)
	if err != nil {
		return nil, err
	}
	if callerMembership == nil {
		return nil, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.memberships.GetByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	m := &membershipdomain.Membership{
		ID:        uuid.New().String(),
		UserID:    userID,
		OrgID:     orgID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		if errors.Is(err, membershiprepo.ErrDuplicateMembership) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) orgIDSet(ctx context.Context, userID string) (map[string]bool, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		set[m.OrgID] = true
	}
	return set, nil
}
