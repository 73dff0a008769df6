package domain

import (
	"errors"
	"time"
)

// Org represents an organisation/tenant. Orgs are never updated or deleted;
// description is optional.
type Org struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Validate validates the organisation for persistence. Returns an error describing the first validation failure.
func (o *Org) Validate() error {
	if o.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// Projection is the outward representation of an organisation.
type Projection struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Projection returns the outward representation of o.
func (o *Org) Projection() Projection {
	return Projection{
		OrgID:       o.ID,
		Name:        o.Name,
		Description: o.Description,
	}
}
