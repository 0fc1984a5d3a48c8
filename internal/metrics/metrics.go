// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RosterWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_writes_total",
			Help: "Total number of roster write operations",
		},
		[]string{"event", "entity", "result"},
	)

	CertificationLocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certification_locks_total",
			Help: "Total number of teams locked by certification submits",
		},
		[]string{"event"},
	)

	TeamDeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "team_deletes_total",
			Help: "Total number of team deletions",
		},
		[]string{"event", "result"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
