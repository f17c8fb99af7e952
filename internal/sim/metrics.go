package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentflow_requests_total",
		Help: "Requests processed, by method and status code.",
	}, []string{"method", "code"})

	injectedFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentflow_injected_failures_total",
		Help: "Write requests failed by the error injector.",
	}, []string{"route"})

	requestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "talentflow_request_latency_seconds",
		Help:    "End-to-end request latency including artificial delay.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 3, 5},
	})
)
