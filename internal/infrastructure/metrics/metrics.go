package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chapter-API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Generation outcomes
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "generations_total",
			Help:      "Total chapter generation attempts",
		},
		[]string{"provider", "model", "status"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Generation inference duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "generation_duration_seconds",
			Help:      "Chapter generation duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "provider"},
	)

	// Catalog state gauge
	CatalogModels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "chapter",
			Subsystem: "api",
			Name:      "catalog_models",
			Help:      "Number of models in the live aggregator catalog",
		},
	)
)

// RecordRequest records an HTTP request with its duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordGeneration records one chapter generation attempt
func RecordGeneration(provider, model, status string, durationSec float64) {
	GenerationsTotal.WithLabelValues(provider, model, status).Inc()
	GenerationDuration.WithLabelValues(model, provider).Observe(durationSec)
}

// RecordProviderError records a provider error
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// NormalizeEndpoint reduces a request path to a bounded label value.
func NormalizeEndpoint(path string) string {
	if path == "" {
		return "unknown"
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return "/" + strings.Join(parts, "/")
}
