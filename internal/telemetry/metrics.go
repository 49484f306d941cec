// Package telemetry exposes the service's Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksMutated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "productivity",
		Subsystem: "tasks",
		Name:      "mutations_total",
		Help:      "Task store mutations, labelled by operation.",
	}, []string{"op"})

	AdvisorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "productivity",
		Subsystem: "advisor",
		Name:      "requests_total",
		Help:      "Advisor invocations, labelled by operation and outcome.",
	}, []string{"op", "outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "productivity",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and status.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"method", "status"})
)
