// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// It adapts the generic metrics.Backend interface to Prometheus by mapping
// the loader's labels (stage, status, kind) onto client_golang collectors
// and pushing the registry to a Pushgateway at the end of the run instead of
// exposing a scrape endpoint — the loader is a short-lived batch process.
// All Prometheus-specific dependencies stay in this package so the core can
// swap backends without changes.
package prompush

import (
	"fmt"

	"flightgraph/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // flightgraph_stage_total
	stageDuration *prometheus.SummaryVec // flightgraph_stage_duration_seconds
	rowCounter    *prometheus.CounterVec // flightgraph_rows_total
	batchCounter  prometheus.Counter     // flightgraph_batches_total
	batchFailures prometheus.Counter     // flightgraph_batches_failed_total
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway "job" grouping key; gatewayURL is the server base URL.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "flightgraph"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightgraph_stage_total",
			Help: "Total number of loader stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "flightgraph_stage_duration_seconds",
			Help:       "Duration of loader stages in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightgraph_rows_total",
			Help: "Row-level counts per kind (read, skipped, rejected, written, ...).",
		},
		[]string{"kind"},
	)
	batchCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flightgraph_batches_total",
			Help: "Total number of write batches attempted for this run.",
		},
	)
	batchFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flightgraph_batches_failed_total",
			Help: "Total number of write batches that failed for this run.",
		},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, rowCounter, batchCounter, batchFailures} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
		batchCounter:  batchCounter,
		batchFailures: batchFailures,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "flightgraph_stage_total":
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)

	case "flightgraph_rows_total":
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)

	case "flightgraph_batches_total":
		b.batchCounter.Add(delta)

	case "flightgraph_batches_failed_total":
		b.batchFailures.Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, value float64, labels metrics.Labels) {
	if name != "flightgraph_stage_duration_seconds" {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
