package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "six_degrees",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
	}, []string{"method", "path", "status"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "six_degrees",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests",
	}, []string{"method", "path", "status"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "six_degrees",
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Error responses by code",
	}, []string{"code"})

	// searchOutcomes counts finished searches.
	// Labels: state (found, exhausted, cancelled)
	searchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "six_degrees",
		Subsystem: "search",
		Name:      "outcomes_total",
		Help:      "Path searches by final state",
	}, []string{"state"})
)
