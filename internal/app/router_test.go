package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btto/orgaccess/internal/observability"
	"github.com/btto/orgaccess/jobs"
)

func newTestRouter(checks ...ReadinessCheck) (http.Handler, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return NewRouter(RouterParams{
		Config:     &Config{AppEnv: "test"},
		Metrics:    metrics,
		JobHandler: jobs.NewHandler(nil, nil, nil),
		Readiness:  checks,
	}), metrics
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthzAndSecureHeaders(t *testing.T) {
	router, _ := newTestRouter()
	rr := get(router, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestReadyzReportsFailingDependency(t *testing.T) {
	router, _ := newTestRouter(
		ReadinessCheck{Name: "postgres", Check: func(context.Context) error { return nil }},
		ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("refused") }},
	)
	rr := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"ready":false,"checks":{"postgres":"ok","redis":"unavailable"}}`, rr.Body.String())
}

func TestReadyzWithoutChecks(t *testing.T) {
	router, _ := newTestRouter()
	rr := get(router, "/readyz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsAndJobsMounted(t *testing.T) {
	router, _ := newTestRouter()
	require.Equal(t, http.StatusOK, get(router, "/jobs/health").Code)

	rr := get(router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `orgaccess_http_requests_total{code="200",route="/jobs/health"} 1`)
}
