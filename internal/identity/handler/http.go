// Package handler exposes registration and login over HTTP.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"org-membership-backend/internal/httputil"
	"org-membership-backend/internal/identity/service"
	"org-membership-backend/internal/platform/apperror"
)

type Handler struct {
	auth   *service.AuthService
	logger *logrus.Logger
}

func New(auth *service.AuthService, logger *logrus.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// RegisterRoutes mounts the public authentication endpoints.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   string      `json:"expiresAt"`
	User        interface{} `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeAuthError(w, err, "registration failed")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "registration successful", authResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
		User:        result.User.Profile(),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err, "login failed")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "login successful", authResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
		User:        result.User.Profile(),
	})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error, logMsg string) {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteFieldErrors(w, http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		httputil.WriteFieldError(w, http.StatusConflict, "email", "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
	default:
		h.logger.WithError(err).Error(logMsg)
		httputil.WriteInternalError(w)
	}
}
