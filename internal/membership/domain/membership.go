package domain

import (
	"time"
)

// Membership links a user to an organisation. Membership is binary: a user
// either belongs to an org or does not. At most one membership may exist per
// (UserID, OrgID) pair; the memberships_user_org_key constraint is the final
// arbiter under concurrent inserts.
type Membership struct {
	ID        string
	UserID    string
	OrgID     string
	CreatedAt time.Time
}
