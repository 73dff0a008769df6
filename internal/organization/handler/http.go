// Package handler exposes organisation management over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"org-membership-backend/internal/access"
	"org-membership-backend/internal/httputil"
	"org-membership-backend/internal/organization/domain"
	"org-membership-backend/internal/platform/apperror"
	"org-membership-backend/internal/server/middleware"
)

type Handler struct {
	access *access.Service
	logger *logrus.Logger
}

func New(svc *access.Service, logger *logrus.Logger) *Handler {
	return &Handler{access: svc, logger: logger}
}

// RegisterRoutes mounts the organisation endpoints on an authenticated router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/organisations", h.List).Methods(http.MethodGet)
	r.HandleFunc("/organisations", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/organisations/{orgId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/organisations/{orgId}/users", h.AddMember).Methods(http.MethodPost)
}

type createOrgRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

type membershipResponse struct {
	MembershipID string `json:"membershipId"`
	UserID       string `json:"userId"`
	OrgID        string `json:"orgId"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	orgs, err := h.access.ListOrganisations(r.Context(), callerID)
	if err != nil {
		h.logger.WithError(err).Error("list organisations failed")
		httputil.WriteInternalError(w)
		return
	}

	projections := make([]domain.Projection, 0, len(orgs))
	for _, org := range orgs {
		projections = append(projections, org.Projection())
	}
	httputil.WriteSuccess(w, http.StatusOK, "organisations retrieved", map[string]any{
		"organisations": projections,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	orgID, err := httputil.PathID(r, "orgId")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	org, err := h.access.GetOrganisation(r.Context(), callerID, orgID)
	switch {
	case err == nil:
		httputil.WriteSuccess(w, http.StatusOK, "organisation retrieved", org.Projection())
	case errors.Is(err, access.ErrOrgNotFound):
		httputil.WriteError(w, http.StatusNotFound, "organisation not found")
	case errors.Is(err, access.ErrForbidden):
		httputil.WriteError(w, http.StatusForbidden, "access denied")
	default:
		h.logger.WithError(err).Error("get organisation failed")
		httputil.WriteInternalError(w)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	var req createOrgRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	org, err := h.access.CreateOrganisation(r.Context(), callerID, req.Name, req.Description)
	if err != nil {
		var verr *apperror.ValidationError
		if errors.As(err, &verr) {
			httputil.WriteFieldErrors(w, http.StatusUnprocessableEntity, verr.Fields)
			return
		}
		h.logger.WithError(err).Error("create organisation failed")
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "organisation created", org.Projection())
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
		return
	}

	orgID, err := httputil.PathID(r, "orgId")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addMemberRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		httputil.WriteFieldError(w, http.StatusUnprocessableEntity, "userId", "userId is required")
		return
	}
	if err := uuid.Validate(req.UserID); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid userId format")
		return
	}

	membership, err := h.access.AddMember(r.Context(), callerID, orgID, req.UserID)
	switch {
	case err == nil:
		httputil.WriteSuccess(w, http.StatusCreated, "member added", membershipResponse{
			MembershipID: membership.ID,
			UserID:       membership.UserID,
			OrgID:        membership.OrgID,
		})
	case errors.Is(err, access.ErrOrgNotFound):
		httputil.WriteError(w, http.StatusNotFound, "organisation not found")
	case errors.Is(err, access.ErrUserNotFound):
		httputil.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, access.ErrForbidden):
		httputil.WriteError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, access.ErrAlreadyMember):
		httputil.WriteFieldError(w, http.StatusConflict, "userId", "user is already a member of the organisation")
	default:
		h.logger.WithError(err).Error("add member failed")
		httputil.WriteInternalError(w)
	}
}
