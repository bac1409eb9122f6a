// Package metrics exposes the service's Prometheus instruments and the HTTP
// middleware that feeds them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for one service instance.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	CacheLookups     *prometheus.CounterVec
	UpstreamRequests *prometheus.CounterVec
	QuizSessions     prometheus.Gauge
}

// New registers the instruments on the default registry. Call it once per
// process.
func New(service string) *Metrics {
	return &Metrics{
		RequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "cache_lookups_total",
				Help:      "Content cache lookups by layer and outcome",
			},
			[]string{"layer", "outcome"},
		),
		UpstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "upstream_requests_total",
				Help:      "Requests to the content API by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		QuizSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "humorpedia",
				Subsystem: service,
				Name:      "quiz_sessions_active",
				Help:      "Quiz sessions currently held in memory",
			},
		),
	}
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records count, duration and in-flight gauges per request. Route
// labels use the chi route pattern, not the raw path, to keep cardinality
// bounded.
func Middleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.WithLabelValues(r.Method).Inc()
			defer m.RequestsInFlight.WithLabelValues(r.Method).Dec()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
