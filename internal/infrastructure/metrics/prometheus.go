package metrics

import (
	"net/http"
	"strconv"
	"time"

	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EstimatorMetrics records estimator outcomes.
type EstimatorMetrics struct {
	estimates  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	confidence *prometheus.HistogramVec
	persists   *prometheus.CounterVec
}

var _ interfaces.IEstimationMetrics = (*EstimatorMetrics)(nil)

func NewEstimatorMetrics(reg prometheus.Registerer) *EstimatorMetrics {
	f := promauto.With(reg)
	return &EstimatorMetrics{
		estimates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repair_pricing_estimates_total",
				Help: "Total number of resolved estimates by source",
			},
			[]string{"source"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repair_pricing_estimate_failures_total",
				Help: "Total number of estimate requests that produced no price",
			},
			[]string{"reason"},
		),
		confidence: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repair_pricing_estimate_confidence",
				Help:    "Confidence score of resolved estimates",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
			},
			[]string{"source"},
		),
		persists: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repair_pricing_estimate_persist_total",
				Help: "Outcomes of estimate persistence attempts",
			},
			[]string{"outcome"},
		),
	}
}

func (m *EstimatorMetrics) ObserveEstimate(source entities.EstimateSource, confidence float64) {
	m.estimates.WithLabelValues(string(source)).Inc()
	m.confidence.WithLabelValues(string(source)).Observe(confidence)
}

func (m *EstimatorMetrics) ObserveFailure(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

func (m *EstimatorMetrics) ObservePersist(outcome string) {
	m.persists.WithLabelValues(outcome).Inc()
}

// HTTPMetrics records request counts, latencies and in-flight requests.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		inFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// Middleware labels requests by route template to keep cardinality low.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requests.With(labels).Inc()
		m.duration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
