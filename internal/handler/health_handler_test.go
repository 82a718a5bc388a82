package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gsi-session/internal/testutil"
)

func TestHealth_ReturnsOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	Health(w, req)

	testutil.AssertStatusCode(t, w, http.StatusOK)
	testutil.AssertEqual(t, w.Header().Get("Content-Type"), "application/json")

	var response map[string]string
	err := json.NewDecoder(w.Body).Decode(&response)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, response["status"], "ok")
}

func TestHealth_AlwaysReturns200(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"GET request", http.MethodGet},
		{"HEAD request", http.MethodHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			Health(w, req)

			testutil.AssertStatusCode(t, w, http.StatusOK)
		})
	}
}

func TestNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/.env", nil)
	w := httptest.NewRecorder()

	NotFound(w, req)

	testutil.AssertStatusCode(t, w, http.StatusNotFound)
}
