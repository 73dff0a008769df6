package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	membershipdomain "org-membership-backend/internal/membership/domain"
	organizationdomain "org-membership-backend/internal/organization/domain"
	"org-membership-backend/internal/platform/apperror"
	"org-membership-backend/internal/security"
	userdomain "org-membership-backend/internal/user/domain"
	userrepo "org-membership-backend/internal/user/repository"
)

// Sentinel errors for the auth service; handlers map them to HTTP statuses.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// RegistrationStore is the persistence needed by the auth service. CreateAccount
// must create the user, the default organisation, and the membership linking
// them as one atomic unit: on any failure none of the three is persisted.
type RegistrationStore interface {
	GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error)
	CreateAccount(ctx context.Context, u *userdomain.User, o *organizationdomain.Org, m *membershipdomain.Membership) error
}

// RegisterInput is the raw registration request body after transport decoding.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// AuthResult holds the outcome of Register or Login: a session token plus the
// authenticated user (callers project it, never expose the hash).
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *userdomain.User
}

// AuthService implements registration and password login.
type AuthService struct {
	store  RegistrationStore
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(store RegistrationStore, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user, their default organisation ("{firstName}'s
// Organisation"), and the membership linking the two, then issues a session
// token. The three creates are atomic; a concurrent registration with the same
// email loses to the users_email_key constraint and gets ErrEmailAlreadyRegistered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	var fields []apperror.FieldError
	if in.FirstName == "" {
		fields = append(fields, apperror.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if in.LastName == "" {
		fields = append(fields, apperror.FieldError{Field: "lastName", Message: "Last name is required"})
	}
	if in.Email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(in.Email) {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email is invalid"})
	}
	if in.Password == "" {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "Password is required"})
	} else if len(in.Password) > 72 {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "Password must be at most 72 characters"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields...)
	}

	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hashed,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	org := &organizationdomain.Org{
		ID:          uuid.New().String(),
		Name:        fmt.Sprintf("%s's Organisation", in.FirstName),
		Description: fmt.Sprintf("Organisation for %s %s", in.FirstName, in.LastName),
		CreatedAt:   now,
	}
	membership := &membershipdomain.Membership{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		OrgID:     org.ID,
		CreatedAt: now,
	}

	if err := s.store.CreateAccount(ctx, user, org, membership); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login authenticates with email and password and issues a session token.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// response never reveals which one was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	var fields []apperror.FieldError
	if email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Email is required"})
	}
	if password == "" {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields...)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
