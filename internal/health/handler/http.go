// Package handler reports service health for load balancers and CI.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"org-membership-backend/internal/httputil"
)

// Pinger abstracts a database connectivity check (satisfied by *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

// New returns a health handler. A nil Pinger skips the database check.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes mounts the health endpoint on a public router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Check).Methods(http.MethodGet)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			httputil.WriteError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	httputil.WriteSuccess(w, http.StatusOK, "ok", nil)
}
