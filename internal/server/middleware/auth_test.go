package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"org-membership-backend/internal/security"
)

func authTestProvider(t *testing.T) *security.TokenProvider {
	t.Helper()
	return security.NewTokenProvider([]byte("test-secret"), "test-issuer", time.Hour)
}

// echoIdentity writes the identity found in context so tests can verify propagation.
func echoIdentity(t *testing.T, gotUserID, gotEmail *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetUserID(r.Context()); ok {
			*gotUserID = id
		}
		if email, ok := GetEmail(r.Context()); ok {
			*gotEmail = email
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := authTestProvider(t)
	token, _, err := tokens.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotUserID, gotEmail string
	handler := Auth(tokens)(echoIdentity(t, &gotUserID, &gotEmail))

	req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("user id = %q, want user-1", gotUserID)
	}
	if gotEmail != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", gotEmail)
	}
}

func TestAuth_CaseInsensitiveScheme(t *testing.T) {
	tokens := authTestProvider(t)
	token, _, err := tokens.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotUserID, gotEmail string
	handler := Auth(tokens)(echoIdentity(t, &gotUserID, &gotEmail))

	req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("user id = %q, want user-1", gotUserID)
	}
}

func TestAuth_Rejections(t *testing.T) {
	tokens := authTestProvider(t)
	otherProvider := security.NewTokenProvider([]byte("other-secret"), "test-issuer", time.Hour)
	foreignToken, _, err := otherProvider.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	expiredProvider := security.NewTokenProvider([]byte("test-secret"), "test-issuer", -time.Minute)
	expiredToken, _, err := expiredProvider.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"empty bearer", "Bearer "},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong signing key", "Bearer " + foreignToken},
		{"expired token", "Bearer " + expiredToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("handler should not run for rejected request")
			}
		})
	}
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), "user-9", "x@example.com")

	id, ok := GetUserID(ctx)
	if !ok || id != "user-9" {
		t.Errorf("GetUserID = %q, %v; want user-9, true", id, ok)
	}
	email, ok := GetEmail(ctx)
	if !ok || email != "x@example.com" {
		t.Errorf("GetEmail = %q, %v; want x@example.com, true", email, ok)
	}
}

func TestGetUserID_Absent(t *testing.T) {
	if id, ok := GetUserID(context.Background()); ok || id != "" {
		t.Errorf("GetUserID on empty context = %q, %v; want \"\", false", id, ok)
	}
	if email, ok := GetEmail(context.Background()); ok || email != "" {
		t.Errorf("GetEmail on empty context = %q, %v; want \"\", false", email, ok)
	}
}
