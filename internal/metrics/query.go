// Package metrics holds the Prometheus instruments of griddigger.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream query and cache metrics.
var (
	QueryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "griddigger",
			Name:      "graphql_requests_total",
			Help:      "Total number of GraphQL requests to the upstream endpoint",
		},
		[]string{"operation", "status"},
	)

	QueryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "griddigger",
			Name:      "graphql_request_duration_seconds",
			Help:      "GraphQL request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "griddigger",
			Name:      "graphql_errors_total",
			Help:      "Total GraphQL failures by kind",
		},
		[]string{"operation", "error_type"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "griddigger",
			Name:      "cache_total",
			Help:      "Response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers the query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryRequestsTotal)
	prometheus.MustRegister(QueryRequestDuration)
	prometheus.MustRegister(QueryErrorsTotal)
	prometheus.MustRegister(CacheTotal)
	queryMetricsRegistered = true
}
