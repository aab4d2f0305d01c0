package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TestMetricsMiddleware_UsesRoutePattern ensures the metrics middleware labels
// by the chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rr.Code)
	}

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte(`path="/items/{id}"`)) || !bytes.Contains(body, []byte(`status="418"`)) {
		t.Fatalf("expected route pattern label with status 418")
	}
	if bytes.Contains(body, []byte(`path="/items/42"`)) {
		t.Fatalf("raw path leaked into labels")
	}
}

func TestStatusRecorder_DefaultsTo200(t *testing.T) {
	w := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	_, _ = sr.Write([]byte("x"))
	if sr.status != http.StatusOK {
		t.Fatalf("status=%d", sr.status)
	}
	sr.WriteHeader(http.StatusNotFound)
	if sr.status != http.StatusNotFound || w.Code != http.StatusNotFound {
		t.Fatalf("status=%d code=%d", sr.status, w.Code)
	}
}
