package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

// Metrics owns the Prometheus registry for decisions, relation lookups and the
// ops HTTP surface.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	decisions       *prometheus.CounterVec
	relationCache   *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics initialises the registry with the base collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaccess_decisions_total",
		Help: "Authorization decisions by resource, right and outcome.",
	}, []string{"resource", "right", "outcome"})
	relationCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaccess_relation_cache_lookups_total",
		Help: "Relation oracle cache lookups by result.",
	}, []string{"result"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaccess_http_requests_total",
		Help: "Ops HTTP requests by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orgaccess_http_request_duration_seconds",
		Help:    "Ops HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	registry.MustRegister(decisions, relationCache, requests, duration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		decisions:       decisions,
		relationCache:   relationCache,
		requestsTotal:   requests,
		requestDuration: duration,
	}
}

// ObserveDecision counts a single engine decision.
func (m *Metrics) ObserveDecision(resource, right string, allowed bool, err error) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(resource, right, Outcome(allowed, err)).Inc()
}

// ObserveRelationCache counts a relation cache hit or miss.
func (m *Metrics) ObserveRelationCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.relationCache.WithLabelValues(result).Inc()
}

// Outcome labels a decision. Errors win over the boolean.
func Outcome(allowed bool, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case allowed:
		return OutcomeAllowed
	default:
		return OutcomeDenied
	}
}

// Handler returns the http.Handler for /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Registerer exposes the registry for additional collectors such as job metrics.
// A nil Metrics yields a nil Registerer so callers skip registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return nil
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
