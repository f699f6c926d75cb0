package linksource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts remote fetches.
	// Labels: relation (links, linkshere), outcome (ok, error, cancelled)
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "six_degrees",
		Subsystem: "linksource",
		Name:      "requests_total",
		Help:      "Remote link fetches by outcome",
	}, []string{"relation", "outcome"})

	// cacheLookups counts cache lookups.
	// Labels: result (hit, miss)
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "six_degrees",
		Subsystem: "linksource",
		Name:      "cache_lookups_total",
		Help:      "Link cache lookups by result",
	}, []string{"result"})

	// rateLimitWait measures time spent blocked on the rate limiter
	rateLimitWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "six_degrees",
		Subsystem: "linksource",
		Name:      "rate_limit_wait_seconds",
		Help:      "Time spent waiting for rate limit capacity",
		Buckets:   []float64{0, 0.1, 1, 5, 15, 30, 60},
	})
)
