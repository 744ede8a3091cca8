// Package metrics exposes Prometheus metrics for scans, upstream fetches and notifications.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "teetime_scanner"

// Outcome labels shared by the counters.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeParseError  = "parse_error"
	OutcomeUnsupported = "unsupported"
	OutcomeInvalid     = "invalid"
	OutcomeCanceled    = "canceled"
)

// Recorder owns a private registry so tests and multiple servers never collide.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	scans         *prometheus.CounterVec
	courseResults *prometheus.CounterVec
	slots         *prometheus.CounterVec
	upstream      *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewRecorder registers all collectors, plus the Go and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Scan requests by outcome.",
		}, []string{"outcome"}),
		courseResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "course_results_total",
			Help:      "Per-course scan results by adapter and outcome.",
		}, []string{"adapter", "outcome"}),
		slots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tee_times_total",
			Help:      "Tee times returned after window filtering, by adapter.",
		}, []string{"adapter"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_seconds",
			Help:      "Latency of adapter fetches against upstream booking sites.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"adapter", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Webhook notifications by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		r.scans,
		r.courseResults,
		r.slots,
		r.upstream,
		r.notifications,
		r.httpRequests,
		r.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordScan counts a finished scan request.
func (r *Recorder) RecordScan(outcome string) {
	if r == nil {
		return
	}
	r.scans.WithLabelValues(outcome).Inc()
}

// RecordCourseResult counts one course result and the tee times it produced.
func (r *Recorder) RecordCourseResult(adapter, outcome string, times int) {
	if r == nil {
		return
	}
	if adapter == "" {
		adapter = "none"
	}
	r.courseResults.WithLabelValues(adapter, outcome).Inc()
	if times > 0 {
		r.slots.WithLabelValues(adapter).Add(float64(times))
	}
}

// RecordUpstream observes one adapter fetch.
func (r *Recorder) RecordUpstream(adapter, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.upstream.WithLabelValues(adapter, outcome).Observe(duration.Seconds())
}

// RecordNotification counts a webhook delivery attempt.
func (r *Recorder) RecordNotification(outcome string) {
	if r == nil {
		return
	}
	r.notifications.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}
