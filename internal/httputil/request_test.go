package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func TestParseJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))

	var body struct {
		Name string `json:"name"`
	}
	if err := ParseJSON(req, &body); err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if body.Name != "Acme" {
		t.Errorf("name = %q, want Acme", body.Name)
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	var body struct{}
	if err := ParseJSON(req, &body); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestPathID(t *testing.T) {
	id := uuid.NewString()
	r := mux.NewRouter()

	var got string
	var gotErr error
	r.HandleFunc("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = PathID(req, "id")
	})

	req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if gotErr != nil {
		t.Fatalf("PathID: %v", gotErr)
	}
	if got != id {
		t.Errorf("id = %q, want %q", got, id)
	}
}

func TestPathID_Malformed(t *testing.T) {
	r := mux.NewRouter()

	var gotErr error
	r.HandleFunc("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, gotErr = PathID(req, "id")
	})

	req := httptest.NewRequest(http.MethodGet, "/users/12345", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if gotErr == nil {
		t.Fatal("expected error for malformed UUID")
	}
	if gotErr.Error() != "invalid id format" {
		t.Errorf("error = %q, want %q", gotErr.Error(), "invalid id format")
	}
}
