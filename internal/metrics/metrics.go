// Package metrics holds the prometheus collectors of the editor and the
// backend wrappers that feed them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultDangling = "dangling_wire"
	ResultRange    = "out_of_range"
	ResultEmpty    = "empty"
)

var (
	// GraphBuilds counts graph rebuilds by result.
	// Labels: "success", "empty", "dangling_wire", "out_of_range", "error"
	GraphBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gategrid_graph_builds_total",
		Help: "Total graph rebuilds by result",
	}, []string{"result"})

	// BackendRequests counts scene store calls by operation and result.
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gategrid_backend_requests_total",
		Help: "Total scene store requests by operation and result",
	}, []string{"op", "result"})

	// BackendDuration observes scene store call latency by operation.
	BackendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gategrid_backend_request_duration_seconds",
		Help:    "Scene store request duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
	}, []string{"op"})

	// FeedbackGates reports how many gates of the current graph sit on a
	// cycle.
	FeedbackGates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gategrid_feedback_gates",
		Help: "Gates of the current graph that lie on a feedback loop",
	})
)
