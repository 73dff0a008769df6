package middleware

import (
	"net/http"
	"strings"

	"org-membership-backend/internal/httputil"
	"org-membership-backend/internal/security"
)

const bearerPrefix = "bearer "

// Auth returns middleware that validates the Bearer session token and sets
// the caller's user_id and email in the request context. Missing, malformed,
// expired, and bad-signature tokens are all rejected with the same 401 before
// any handler runs.
func Auth(tokens *security.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}
			userID, email, err := tokens.Verify(token)
			if err != nil {
				httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}
			ctx := WithIdentity(r.Context(), userID, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or "" if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
