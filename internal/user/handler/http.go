// Package handler exposes user profile reads over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"org-membership-backend/internal/access"
	"org-membership-backend/internal/httputil"
	"org-membership-backend/internal/server/middleware"
)

type Handler struct {
	access *access.Service
	logger *logrus.Logger
}

func New(svc *access.Service, logger *logrus.Logger) *Handler {
	return &Handler{access: svc, logger: logger}
}

// RegisterRoutes mounts the user endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	targetID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.access.GetUserProfile(r.Context(), callerID, targetID)
	switch {
	case err == nil:
		httputil.WriteSuccess(w, http.StatusOK, "user retrieved", user.Profile())
	case errors.Is(err, access.ErrUserNotFound):
		httputil.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, access.ErrForbidden):
		httputil.WriteError(w, http.StatusForbidden, "access denied")
	default:
		h.logger.WithError(err).Error("get user failed")
		httputil.WriteInternalError(w)
	}
}
