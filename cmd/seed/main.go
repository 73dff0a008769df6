// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"org-membership-backend/internal/config"
	"org-membership-backend/internal/db"
	membershipdomain "org-membership-backend/internal/membership/domain"
	membershiprepo "org-membership-backend/internal/membership/repository"
	organizationdomain "org-membership-backend/internal/organization/domain"
	organizationrepo "org-membership-backend/internal/organization/repository"
	"org-membership-backend/internal/security"
	userdomain "org-membership-backend/internal/user/domain"
	userrepo "org-membership-backend/internal/user/repository"
)

const (
	devEmail      = "dev@example.com"
	memberEmail   = "member@example.com"
	outsiderEmail = "outsider@example.com"
	devPassword   = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	orgs := organizationrepo.NewPostgresStore(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, devEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()

	newUser := func(first, last, email string) *userdomain.User {
		return &userdomain.User{
			ID:           uuid.NewString(),
			FirstName:    first,
			LastName:     last,
			Email:        email,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	dev := newUser("Dev", "User", devEmail)
	member := newUser("Member", "User", memberEmail)
	outsider := newUser("Outsider", "User", outsiderEmail)

	for _, u := range []*userdomain.User{dev, member, outsider} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", u.Email, err)
		}
	}

	// Dev and Member share an org; Outsider gets their own, so cross-org
	// denials are exercisable out of the box.
	sharedOrg := &organizationdomain.Org{
		ID:          uuid.NewString(),
		Name:        "Acme Dev",
		Description: "Shared development organisation",
		CreatedAt:   now,
	}
	if err := orgs.CreateWithFounder(ctx, sharedOrg, &membershipdomain.Membership{
		ID:        uuid.NewString(),
		UserID:    dev.ID,
		OrgID:     sharedOrg.ID,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create shared org: %v", err)
	}
	if err := memberships.Create(ctx, &membershipdomain.Membership{
		ID:        uuid.NewString(),
		UserID:    member.ID,
		OrgID:     sharedOrg.ID,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create member membership: %v", err)
	}

	outsiderOrg := &organizationdomain.Org{
		ID:          uuid.NewString(),
		Name:        "Outsider's Organisation",
		Description: "Organisation for Outsider User",
		CreatedAt:   now,
	}
	if err := orgs.CreateWithFounder(ctx, outsiderOrg, &membershipdomain.Membership{
		ID:        uuid.NewString(),
		UserID:    outsider.ID,
		OrgID:     outsiderOrg.ID,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create outsider org: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Dev login: %s / %s\n", devEmail, devPassword)
	fmt.Printf("Member login: %s / %s\n", memberEmail, devPassword)
	fmt.Printf("Outsider login: %s / %s\n", outsiderEmail, devPassword)
}
