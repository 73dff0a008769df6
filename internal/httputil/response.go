// Package httputil provides HTTP handler utilities for consistent JSON
// envelopes, error responses, and request parsing.
package httputil

import (
	"encoding/json"
	"net/http"

	"org-membership-backend/internal/platform/apperror"
)

// Envelope is the standard response shape: status is "success" or "error".
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// FieldErrorsBody is the body for field-tagged validation and conflict responses.
type FieldErrorsBody struct {
	Errors []apperror.FieldError `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteSuccess writes a success envelope with the given status, message, and payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Status: "success", Message: message, Data: data})
}

// WriteError writes an error envelope with the given status and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Status: "error", Message: message})
}

// WriteFieldErrors writes a field-tagged error body with the given status.
func WriteFieldErrors(w http.ResponseWriter, status int, fields []apperror.FieldError) {
	WriteJSON(w, status, FieldErrorsBody{Errors: fields})
}

// WriteFieldError writes a single field-tagged error with the given status.
func WriteFieldError(w http.ResponseWriter, status int, field, message string) {
	WriteFieldErrors(w, status, []apperror.FieldError{{Field: field, Message: message}})
}

// WriteInternalError writes the generic 500 envelope. Internal detail stays
// server-side; callers log the underlying error before calling this.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}
