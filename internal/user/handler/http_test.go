package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"org-membership-backend/internal/access"
	membershipdomain "org-membership-backend/internal/membership/domain"
	organizationdomain "org-membership-backend/internal/organization/domain"
	"org-membership-backend/internal/server/middleware"
	userdomain "org-membership-backend/internal/user/domain"
)

type memUsers struct {
	byID map[string]*userdomain.User
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	return r.byID[id], nil
}

type memOrgs struct {
	byID map[string]*organizationdomain.Org
}

func (r *memOrgs) GetByID(ctx context.Context, id string) (*organizationdomain.Org, error) {
	return r.byID[id], nil
}

func (r *memOrgs) ListByIDs(ctx context.Context, ids []string) ([]*organizationdomain.Org, error) {
	var out []*organizationdomain.Org
	for _, id := range ids {
		if o, ok := r.byID[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrgs) CreateWithFounder(ctx context.Context, o *organizationdomain.Org, m *membershipdomain.Membership) error {
	r.byID[o.ID] = o
	return nil
}

type memMemberships struct {
	byPair map[string]*membershipdomain.Membership
}

func (r *memMemberships) GetByUserAndOrg(ctx context.Context, userID, orgID string) (*membershipdomain.Membership, error) {
	return r.byPair[userID+"/"+orgID], nil
}

func (r *memMemberships) ListByUser(ctx context.Context, userID string) ([]*membershipdomain.Membership, error) {
	var out []*membershipdomain.Membership
	for _, m := range r.byPair {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMemberships) Create(ctx context.Context, m *membershipdomain.Membership) error {
	r.byPair[m.UserID+"/"+m.OrgID] = m
	return nil
}

type fixture struct {
	router   *mux.Router
	users    *memUsers
	mems     *memMemberships
	callerID string
	targetID string
	orgID    string
}

// newFixture builds a router with two users sharing one org.
func newFixture() *fixture {
	users := &memUsers{byID: map[string]*userdomain.User{}}
	orgs := &memOrgs{byID: map[string]*organizationdomain.Org{}}
	mems := &memMemberships{byPair: map[string]*membershipdomain.Membership{}}

	callerID := uuid.NewString()
	targetID := uuid.NewString()
	orgID := uuid.NewString()

	users.byID[callerID] = &userdomain.User{ID: callerID, FirstName: "Caller", LastName: "One", Email: "caller@example.com"}
	users.byID[targetID] = &userdomain.User{ID: targetID, FirstName: "Target", LastName: "Two", Email: "target@example.com", Phone: "555-0100"}
	orgs.byID[orgID] = &organizationdomain.Org{ID: orgID, Name: "Acme"}
	mems.byPair[callerID+"/"+orgID] = &membershipdomain.Membership{ID: uuid.NewString(), UserID: callerID, OrgID: orgID}
	mems.byPair[targetID+"/"+orgID] = &membershipdomain.Membership{ID: uuid.NewString(), UserID: targetID, OrgID: orgID}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	r := mux.NewRouter()
	New(access.NewService(users, orgs, mems), logger).RegisterRoutes(r)

	return &fixture{router: r, users: users, mems: mems, callerID: callerID, targetID: targetID, orgID: orgID}
}

func (f *fixture) get(t *testing.T, callerID, targetID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/users/"+targetID, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), callerID, "caller@example.com"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGetUser_SharedOrg(t *testing.T) {
	f := newFixture()

	rec := f.get(t, f.callerID, f.targetID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "target@example.com") {
		t.Errorf("body should contain target email: %s", body)
	}
	if strings.Contains(body, "assword") {
		t.Errorf("body must not leak password material: %s", body)
	}
}

func TestGetUser_Self(t *testing.T) {
	f := newFixture()

	if rec := f.get(t, f.callerID, f.callerID); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUser_NoSharedOrg(t *testing.T) {
	f := newFixture()
	// Sever the caller's memberships so the org sets are disjoint.
	delete(f.mems.byPair, f.callerID+"/"+f.orgID)

	rec := f.get(t, f.callerID, f.targetID)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUser_UnknownTarget(t *testing.T) {
	f := newFixture()

	rec := f.get(t, f.callerID, uuid.NewString())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUser_MalformedID(t *testing.T) {
	f := newFixture()

	rec := f.get(t, f.callerID, "not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid id format") {
		t.Errorf("body should name the malformed parameter: %s", rec.Body.String())
	}
}

func TestGetUser_NoIdentity(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/users/"+f.targetID, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401; body: %s", rec.Code, rec.Body.String())
	}
}
