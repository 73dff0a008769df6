package repository

import (
	"context"
	"errors"

	"org-membership-backend/internal/user/domain"
)

// ErrDuplicateEmail is returned by Create when a user with the same email
// already exists. The users_email_key constraint guarantees this even when a
// concurrent registration slips past the caller's pre-check.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
