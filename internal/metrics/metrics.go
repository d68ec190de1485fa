// Package metrics declares the Prometheus collectors exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_ratings_submitted_total",
			Help: "Accepted rating submissions by outcome (created, updated)",
		},
		[]string{"outcome"},
	)

	RecipeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_cache_hits_total",
			Help: "Recipe detail cache hits",
		},
	)

	RecipeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_cache_misses_total",
			Help: "Recipe detail cache misses",
		},
	)
)

// RecordHTTPRequest records one finished request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordRating(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	RatingsSubmitted.WithLabelValues(outcome).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		RecipeCacheHits.Inc()
		return
	}
	RecipeCacheMisses.Inc()
}
