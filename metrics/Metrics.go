package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tayttopaikka_http_requests_total",
		Help: "Number of http requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "tayttopaikka_http_request_duration_seconds",
		Buckets: []float64{
			0.1, // 100 ms
			0.25,
			0.5,
			1,
			3,
			5,
			10,
		},
	},
	[]string{"path", "code", "method"},
)

var CleanupActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tayttopaikka_user_cleanup_actions_total",
		Help: "User cleanup audit actions written, by action.",
	},
	[]string{"action"},
)

var CleanupUserFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tayttopaikka_user_cleanup_user_failures_total",
		Help: "Per-user cleanup processing failures, by stage.",
	},
	[]string{"stage"},
)

var CleanupRunFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "tayttopaikka_user_cleanup_run_failures_total",
		Help: "Cleanup runs aborted by an escaping error.",
	},
)
