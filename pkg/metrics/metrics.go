// Package metrics defines the Prometheus collectors for the portfolio API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the dedicated registry exposed at /api/metrics. A private
// registry keeps the default Go runtime collectors explicit instead of
// implicit.
var Registry = prometheus.NewRegistry()

var (
	// Custom buckets sized for a pipeline whose slowest leg is one outbound
	// provider call in the low seconds.
	apiBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP metrics
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Contact pipeline metrics
	ContactFormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_form_submissions_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"status"}, // success, validation_failed, rate_limited, dispatch_failed, bad_request
	)

	EmailDispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_dispatch_duration_seconds",
			Help:    "Transactional email dispatch duration in seconds",
			Buckets: apiBuckets,
		},
		[]string{"status"},
	)
)

// Init registers all collectors plus the standard process/Go collectors.
// Call it once from main; the middleware uses the collectors directly so
// tests do not need to register anything.
func Init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		HTTPRequestTotal,
		ActiveRequests,
		ContactFormSubmissions,
		EmailDispatchDuration,
	)
}

// MeasureDuration returns the elapsed seconds since start.
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
