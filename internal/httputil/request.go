package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ParseJSON decodes the request body into dest. Unknown fields are ignored;
// transport-shape errors are the caller's 400.
func ParseJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// PathID extracts the named path parameter and validates it as a canonical
// UUID. Malformed IDs fail here, before any storage lookup.
func PathID(r *http.Request, key string) (string, error) {
	id := mux.Vars(r)[key]
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("invalid %s format", key)
	}
	return id, nil
}
