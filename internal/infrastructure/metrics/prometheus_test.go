package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repair_pricing/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEstimatorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEstimatorMetrics(reg)

	m.ObserveEstimate(entities.EstimateSourceAnalogyFallback, 0.55)
	m.ObserveEstimate(entities.EstimateSourceAnalogyFallback, 0.45)
	m.ObserveFailure("no_pricing_data")
	m.ObservePersist("persisted")

	if got := testutil.ToFloat64(m.estimates.WithLabelValues("ANALOGY_FALLBACK")); got != 2 {
		t.Fatalf("expected 2 estimates, got %v", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues("no_pricing_data")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.persists.WithLabelValues("persisted")); got != 1 {
		t.Fatalf("expected 1 persist, got %v", got)
	}
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(Handler(reg)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/v1/ping", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("expected metrics output, got %s", w.Body.String())
	}
}
