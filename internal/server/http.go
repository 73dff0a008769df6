// Package server assembles the HTTP router from feature handlers.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"org-membership-backend/internal/access"
	healthhandler "org-membership-backend/internal/health/handler"
	identityhandler "org-membership-backend/internal/identity/handler"
	identityservice "org-membership-backend/internal/identity/service"
	organizationhandler "org-membership-backend/internal/organization/handler"
	"org-membership-backend/internal/security"
	"org-membership-backend/internal/server/middleware"
	userhandler "org-membership-backend/internal/user/handler"
)

// Deps holds the services and infrastructure the HTTP handlers need.
type Deps struct {
	// Auth backs /auth/register and /auth/login.
	Auth *identityservice.AuthService
	// Access backs the membership-gated /api endpoints.
	Access *access.Service
	// Tokens verifies bearer tokens for the /api subtree.
	Tokens *security.TokenProvider
	// HealthPinger is used by /healthz for readiness (e.g. *sql.DB). If nil, the DB ping is skipped.
	HealthPinger healthhandler.Pinger
	// Logger is shared by all handlers and middleware.
	Logger *logrus.Logger
}

// NewHandler builds the full HTTP handler.
//
// Route → handler mapping:
//   - /healthz            → internal/health/handler
//   - /auth/*             → internal/identity/handler
//   - /api/users/*        → internal/user/handler (bearer auth required)
//   - /api/organisations* → internal/organization/handler (bearer auth required)
func NewHandler(deps Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	healthhandler.New(deps.HealthPinger).RegisterRoutes(r)
	identityhandler.New(deps.Auth, deps.Logger).RegisterRoutes(r)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(deps.Tokens))
	userhandler.New(deps.Access, deps.Logger).RegisterRoutes(api)
	organizationhandler.New(deps.Access, deps.Logger).RegisterRoutes(api)

	return otelhttp.NewHandler(r, "http.server")
}
