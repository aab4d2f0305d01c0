package router

import "github.com/prometheus/client_golang/prometheus"

var (
	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llmrouter",
			Subsystem: "router",
			Name:      "attempts_total",
			Help:      "Backend HTTP attempts by dialect and outcome",
		},
		[]string{"kind", "outcome"},
	)

	fallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llmrouter",
			Subsystem: "router",
			Name:      "fallbacks_total",
			Help:      "Fallbacks to /api/generate after a non-success status, by primary dialect",
		},
		[]string{"kind"},
	)

	sendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "llmrouter",
			Subsystem: "router",
			Name:      "send_duration_seconds",
			Help:      "Duration of Send including the fallback attempt",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(attemptsTotal, fallbacksTotal, sendDuration)
}

const (
	outcomeOK        = "ok"
	outcomeEmpty     = "empty"
	outcomeHTTPError = "http_error"
	outcomeNetwork   = "network_error"
)
