// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the loader.
//
// It exposes a narrow Backend interface (counters plus timing observations)
// behind a global, pluggable backend that defaults to a no-op, so metric
// calls are always safe even when no real backend is configured. Concrete
// systems (Prometheus Pushgateway) live in subpackages; the rest of the
// codebase depends only on this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a value in a latency/duration style metric.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures one loader stage: latency plus success/failure.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"stage":  stage,
		"status": status,
	}

	backend.IncCounter("flightgraph_stage_total", 1, lbls)
	backend.ObserveDuration("flightgraph_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Kinds mirror the run summary fields:
//   - "read"
//   - "skipped"
//   - "rejected"
//   - "duplicates"
//   - "written"
//   - "unmatched"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("flightgraph_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches increments batch counters for the given job.
func RecordBatches(job string, attempted, failed int64) {
	if attempted > 0 {
		backend.IncCounter("flightgraph_batches_total", float64(attempted), Labels{"job": job})
	}
	if failed > 0 {
		backend.IncCounter("flightgraph_batches_failed_total", float64(failed), Labels{"job": job})
	}
}
