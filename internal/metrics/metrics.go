// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Surfaces that validate a RUT.
const (
	SurfaceCheckEndpoint = "check_endpoint"
	SurfaceRegister      = "register"
	SurfaceProfile       = "profile"
	SurfaceCheckout      = "checkout"
	SurfaceQuote         = "quote"
	SurfaceAdmin         = "admin"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// RUTValidations counts verdicts by surface; kind "none" is a valid RUT.
	RUTValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rut_validations_total",
			Help: "RUT validations by surface and outcome kind",
		},
		[]string{"surface", "kind"},
	)

	QuotesExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotes_expired_total",
			Help: "Quotes moved to expired by the scheduler",
		},
	)
)

// ObserveRUT records one validation outcome.
func ObserveRUT(surface string, kind rut.Kind) {
	RUTValidations.WithLabelValues(surface, kind.String()).Inc()
}
