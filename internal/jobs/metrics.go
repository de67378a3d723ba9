package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Metrics holds the collectors shared by every background job. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
}

// NewMetrics registers job collectors on registerer. A nil registerer
// yields nil metrics so callers without a registry skip instrumentation.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		return nil
	}
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orgaccess_jobs_total",
			Help: "Job executions by job name and status.",
		}, []string{"job", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orgaccess_job_duration_seconds",
			Help:    "Job execution duration in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"job"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orgaccess_jobs_in_flight",
			Help: "Jobs currently executing.",
		}, []string{"job"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orgaccess_job_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run per job.",
		}, []string{"job"}),
	}
	registerer.MustRegister(m.runs, m.duration, m.inFlight, m.lastSuccess)
	return m
}

// Tracker instruments one job run from Track to End.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track marks job as running.
func (m *Metrics) Track(job string) *Tracker {
	if m != nil && job != "" {
		m.inFlight.WithLabelValues(job).Inc()
	}
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End records the outcome and returns err untouched, so handlers can
// write `return tracker.End(err)`.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.job == "" {
		return err
	}
	m := t.metrics
	m.inFlight.WithLabelValues(t.job).Dec()
	m.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	if err != nil {
		m.runs.WithLabelValues(t.job, statusFailure).Inc()
		return err
	}
	m.runs.WithLabelValues(t.job, statusSuccess).Inc()
	m.lastSuccess.WithLabelValues(t.job).SetToCurrentTime()
	return nil
}
