// This file implements the batched upsert client: it groups parameter maps
// into fixed-size chunks and issues one write transaction per chunk. A
// failed chunk is recorded with its row range and the load continues — no
// retry. The shape follows the batching loader this project's pipeline
// ancestors used for SQL COPY, adapted to parameterized graph writes.
package graph

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// BatchError records one failed chunk. First and Last are 1-based positions
// of the chunk's rows in stage submission order.
type BatchError struct {
	First int
	Last  int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch rows %d-%d: %v", e.First, e.Last, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Statement is the write issued per chunk. ReportsWritten switches the
// success accounting from "rows submitted" (node merges always take) to the
// statement's own `written` return value, which also exposes rows whose
// MATCH found no endpoints. The creation counters cannot serve here: a
// MERGE that matches an existing relationship creates nothing yet the row
// succeeded.
type Statement struct {
	Cypher         string
	ReportsWritten bool
}

// WriteStats is the per-stage outcome of a Load.
type WriteStats struct {
	RowsAttempted    int
	RowsWritten      int
	BatchesAttempted int
	BatchesFailed    int

	// Unmatched counts rows from successful relationship batches that the
	// statement did not report as written (their endpoints were absent).
	// Always zero for node statements.
	Unmatched int

	// Failures holds up to the configured sample of batch errors.
	Failures []*BatchError
}

// Writer issues batched writes through a Runner.
type Writer struct {
	runner    Runner
	batchSize int
	sampleCap int
	log       *zap.SugaredLogger
}

// NewWriter constructs a Writer. batchSize must be positive; sampleCap
// bounds how many failures a Load retains verbatim.
func NewWriter(runner Runner, batchSize, sampleCap int, log *zap.SugaredLogger) *Writer {
	return &Writer{runner: runner, batchSize: batchSize, sampleCap: sampleCap, log: log}
}

// Begin starts a Load for one statement. Loads are single-threaded, like
// the rest of the run.
func (w *Writer) Begin(name string, stmt Statement) *Load {
	return &Load{
		w:     w,
		name:  name,
		stmt:  stmt,
		batch: make([]map[string]any, 0, w.batchSize),
		start: time.Now(),
	}
}

// Load accumulates rows and flushes them in fixed-size chunks.
type Load struct {
	w     *Writer
	name  string
	stmt  Statement
	batch []map[string]any
	stats WriteStats
	start time.Time
	last  time.Time
}

// Add appends one row, flushing when the chunk is full. The returned error
// is fatal only (context cancellation or an unrecoverable connection loss);
// ordinary batch failures are recorded in the stats and absorbed.
func (l *Load) Add(ctx context.Context, row map[string]any) error {
	l.batch = append(l.batch, row)
	if len(l.batch) >= l.w.batchSize {
		return l.flush(ctx)
	}
	return nil
}

// Flush writes any pending partial chunk. Call once after the final Add.
func (l *Load) Flush(ctx context.Context) error {
	return l.flush(ctx)
}

// Stats returns the accumulated outcome. Valid after Flush.
func (l *Load) Stats() WriteStats { return l.stats }

func (l *Load) flush(ctx context.Context) error {
	n := len(l.batch)
	if n == 0 {
		return nil
	}

	first := l.stats.RowsAttempted + 1
	last := l.stats.RowsAttempted + n
	l.stats.RowsAttempted = last
	l.stats.BatchesAttempted++

	sum, err := l.w.runner.Exec(ctx, l.stmt.Cypher, map[string]any{"rows": l.batch})

	// Reuse the allocated slice between chunks.
	l.batch = l.batch[:0]

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.stats.BatchesFailed++
		be := &BatchError{First: first, Last: last, Err: err}
		if len(l.stats.Failures) < l.w.sampleCap {
			l.stats.Failures = append(l.stats.Failures, be)
		}
		l.w.log.Warnw("batch failed", "stage", l.name, "rows", fmt.Sprintf("%d-%d", first, last), "err", err)
		return nil
	}

	if l.stmt.ReportsWritten {
		l.stats.RowsWritten += sum.Written
		if gap := n - sum.Written; gap > 0 {
			l.stats.Unmatched += gap
		}
	} else {
		l.stats.RowsWritten += n
	}

	now := time.Now()
	since := now.Sub(l.last)
	if l.last.IsZero() {
		since = now.Sub(l.start)
	}
	rps := float64(0)
	if since > 0 {
		rps = float64(n) / since.Seconds()
	}
	l.last = now
	l.w.log.Infow("batch flushed",
		"stage", l.name,
		"batch", l.stats.BatchesAttempted,
		"rows", n,
		"total_written", l.stats.RowsWritten,
		"rps", int64(rps),
		"elapsed", now.Sub(l.start).Truncate(time.Millisecond).String(),
	)
	return nil
}
