package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gsi-session/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/avatar/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := observability.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/avatar/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/avatar/"+id, nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	counter := observability.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetrics_DefaultStatusCodeIsOK(t *testing.T) {
	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("body"))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body", w.Body.String())
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusSeeOther)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusSeeOther, rw.statusCode)
}

func TestResponseWriter_HijackNotSupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
