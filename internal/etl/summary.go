package etl

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// StageSummary aggregates the outcome of one load stage. All counts are
// rows unless noted.
type StageSummary struct {
	Name string

	RowsRead   int // rows the parser emitted or skipped
	Skipped    int // parser-level skips (malformed, coercion failure)
	Rejected   int // mapping-level rejections (semantic anomalies)
	Duplicates int // client-side composite-key duplicates (merge mode only)

	RowsAttempted int // rows submitted to the database
	RowsWritten   int // rows the database confirmed
	Unmatched     int // route rows whose endpoints were absent

	BatchesAttempted int
	BatchesFailed    int

	// SampleErrors holds the first few row/batch failures verbatim.
	SampleErrors []string

	Duration time.Duration
}

// Failed reports whether the stage lost any rows to batch failures.
func (s StageSummary) Failed() bool { return s.BatchesFailed > 0 }

// Summary is the full-run report printed at the end of every run,
// successful or not.
type Summary struct {
	Stages  []StageSummary
	Started time.Time
	Elapsed time.Duration
}

// Render formats the summary as a fixed-width table plus sampled errors.
func (s *Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %12s %9s %9s %6s %12s %12s %9s %8s %7s\n",
		"stage", "read", "skipped", "rejected", "dups", "attempted", "written", "unmatched", "batches", "failed")
	fmt.Fprintln(&b, strings.Repeat("-", 104))

	for _, st := range s.Stages {
		fmt.Fprintf(&b, "%-10s %12s %9s %9s %6s %12s %12s %9s %8s %7s\n",
			st.Name,
			humanize.Comma(int64(st.RowsRead)),
			humanize.Comma(int64(st.Skipped)),
			humanize.Comma(int64(st.Rejected)),
			humanize.Comma(int64(st.Duplicates)),
			humanize.Comma(int64(st.RowsAttempted)),
			humanize.Comma(int64(st.RowsWritten)),
			humanize.Comma(int64(st.Unmatched)),
			humanize.Comma(int64(st.BatchesAttempted)),
			humanize.Comma(int64(st.BatchesFailed)),
		)
	}

	fmt.Fprintf(&b, "completed in %s\n", s.Elapsed.Truncate(time.Millisecond))

	for _, st := range s.Stages {
		if len(st.SampleErrors) == 0 {
			continue
		}
		// Sampled errors come from skips, rejections, and failed batches.
		total := st.Skipped + st.Rejected + st.BatchesFailed
		if total > len(st.SampleErrors) {
			fmt.Fprintf(&b, "\n%s: first %d of %s failures:\n", st.Name, len(st.SampleErrors), humanize.Comma(int64(total)))
		} else {
			fmt.Fprintf(&b, "\n%s: %d failure(s):\n", st.Name, len(st.SampleErrors))
		}
		for _, e := range st.SampleErrors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	return b.String()
}
