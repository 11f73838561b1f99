// Package etl sequences the load: schema constraints first, then airports,
// airlines, and routes, each stage running all of its batches before the
// next begins. Parse and mapping failures are counted and sampled, batch
// failures are absorbed by the writer, and the run always produces a
// Summary — only schema-init failure, an unreadable input file, or
// cancellation is fatal.
package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"flightgraph/internal/config"
	"flightgraph/internal/graph"
	"flightgraph/internal/metrics"
	"flightgraph/internal/openflights"
	"flightgraph/internal/parser/csv"
)

// Orchestrator states, advanced strictly in order.
type state int

const (
	stateInitSchema state = iota
	stateAirports
	stateAirlines
	stateRoutes
	stateDone
)

// errDuplicateRoute marks a route row dropped by the merge-mode deduper.
var errDuplicateRoute = errors.New("duplicate route")

// Runner executes one full load against a graph database.
type Runner struct {
	cfg config.Config
	db  graph.Runner
	log *zap.SugaredLogger
}

// New constructs a Runner. db is the single shared write capability for the
// whole run; the caller owns its lifecycle.
func New(cfg config.Config, db graph.Runner, log *zap.SugaredLogger) *Runner {
	return &Runner{cfg: cfg, db: db, log: log}
}

// stage describes one LOAD_* state: which file, which schema, which write
// statement, and how a parsed record becomes query parameters.
type stage struct {
	name      string
	path      string
	columns   []csv.Column
	statement graph.Statement
	mapRow    func(line int, rec csv.Record) (map[string]any, error)
}

// Run drives the state machine to completion and returns the run summary.
//
// A schema-init failure halts immediately. A fatal error inside a load
// stage (unreadable file) is recorded and the run still advances to the
// remaining stages — airports and airlines are independent, and routes are
// loaded best-effort against whatever airports made it in. The joined
// stage errors surface in the returned error so the process exits non-zero.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{Started: time.Now()}
	var stageErrs []error

	for st := stateInitSchema; st != stateDone; {
		switch st {
		case stateInitSchema:
			start := time.Now()
			err := graph.EnsureConstraints(ctx, r.db, r.log)
			metrics.RecordStage(r.cfg.Job, "init_schema", err, time.Since(start))
			if err != nil {
				sum.Elapsed = time.Since(sum.Started)
				return sum, fmt.Errorf("schema init: %w", err)
			}
			st = stateAirports

		case stateAirports:
			if err := r.runStage(ctx, sum, r.airportsStage()); err != nil {
				if ctx.Err() != nil {
					sum.Elapsed = time.Since(sum.Started)
					return sum, err
				}
				stageErrs = append(stageErrs, err)
			}
			st = stateAirlines

		case stateAirlines:
			if err := r.runStage(ctx, sum, r.airlinesStage()); err != nil {
				if ctx.Err() != nil {
					sum.Elapsed = time.Since(sum.Started)
					return sum, err
				}
				stageErrs = append(stageErrs, err)
			}
			st = stateRoutes

		case stateRoutes:
			if err := r.runStage(ctx, sum, r.routesStage()); err != nil {
				if ctx.Err() != nil {
					sum.Elapsed = time.Since(sum.Started)
					return sum, err
				}
				stageErrs = append(stageErrs, err)
			}
			st = stateDone
		}
	}

	sum.Elapsed = time.Since(sum.Started)
	if len(stageErrs) > 0 {
		return sum, errors.Join(stageErrs...)
	}
	return sum, nil
}

func (r *Runner) airportsStage() stage {
	return stage{
		name:      "airports",
		path:      r.cfg.AirportsPath,
		columns:   openflights.AirportColumns(),
		statement: graph.Statement{Cypher: graph.MergeAirports},
		mapRow: func(line int, rec csv.Record) (map[string]any, error) {
			a, err := openflights.MapAirport(line, rec)
			if err != nil {
				return nil, err
			}
			return a.Params(), nil
		},
	}
}

func (r *Runner) airlinesStage() stage {
	return stage{
		name:      "airlines",
		path:      r.cfg.AirlinesPath,
		columns:   openflights.AirlineColumns(),
		statement: graph.Statement{Cypher: graph.MergeAirlines},
		mapRow: func(line int, rec csv.Record) (map[string]any, error) {
			a, err := openflights.MapAirline(line, rec)
			if err != nil {
				return nil, err
			}
			return a.Params(), nil
		},
	}
}

func (r *Runner) routesStage() stage {
	merge := r.cfg.RouteMode == config.RouteModeMerge
	cypher := graph.CreateRoutes
	if merge {
		cypher = graph.MergeRoutes
	}
	dedupe := openflights.NewRouteDeduper()

	return stage{
		name:      "routes",
		path:      r.cfg.RoutesPath,
		columns:   openflights.RouteColumns(),
		statement: graph.Statement{Cypher: cypher, ReportsWritten: true},
		mapRow: func(line int, rec csv.Record) (map[string]any, error) {
			rt, err := openflights.MapRoute(line, rec)
			if err != nil {
				return nil, err
			}
			if merge && dedupe.Seen(rt) {
				return nil, errDuplicateRoute
			}
			return rt.Params(), nil
		},
	}
}

// runStage parses one file, maps its rows, and writes them in batches.
// The returned error is fatal (file unreadable, cancellation); everything
// row- or batch-level lands in the stage summary instead.
func (r *Runner) runStage(ctx context.Context, sum *Summary, sg stage) error {
	start := time.Now()
	r.log.Infow("stage start", "stage", sg.name, "path", sg.path)

	st := StageSummary{Name: sg.name}
	sample := func(msg string) {
		if len(st.SampleErrors) < r.cfg.ErrorSample {
			st.SampleErrors = append(st.SampleErrors, msg)
		}
	}

	writer := graph.NewWriter(r.db, r.cfg.BatchSize, r.cfg.ErrorSample, r.log)
	load := writer.Begin(sg.name, sg.statement)

	parser := csv.NewParser(sg.columns)
	err := parser.ParseFile(ctx, sg.path,
		func(line int, rec csv.Record) error {
			st.RowsRead++
			params, err := sg.mapRow(line, rec)
			if err != nil {
				if errors.Is(err, errDuplicateRoute) {
					st.Duplicates++
					return nil
				}
				st.Rejected++
				sample(err.Error())
				return nil
			}
			return load.Add(ctx, params)
		},
		func(re csv.RowError) {
			st.RowsRead++
			st.Skipped++
			sample(re.Error())
		},
	)
	if err == nil {
		err = load.Flush(ctx)
	}

	ws := load.Stats()
	st.RowsAttempted = ws.RowsAttempted
	st.RowsWritten = ws.RowsWritten
	st.Unmatched = ws.Unmatched
	st.BatchesAttempted = ws.BatchesAttempted
	st.BatchesFailed = ws.BatchesFailed
	for _, be := range ws.Failures {
		sample(be.Error())
	}
	st.Duration = time.Since(start)
	sum.Stages = append(sum.Stages, st)

	metrics.RecordStage(r.cfg.Job, sg.name, err, st.Duration)
	metrics.RecordRows(r.cfg.Job, "read", int64(st.RowsRead))
	metrics.RecordRows(r.cfg.Job, "skipped", int64(st.Skipped))
	metrics.RecordRows(r.cfg.Job, "rejected", int64(st.Rejected))
	metrics.RecordRows(r.cfg.Job, "duplicates", int64(st.Duplicates))
	metrics.RecordRows(r.cfg.Job, "written", int64(st.RowsWritten))
	metrics.RecordRows(r.cfg.Job, "unmatched", int64(st.Unmatched))
	metrics.RecordBatches(r.cfg.Job, int64(st.BatchesAttempted), int64(st.BatchesFailed))

	if err != nil {
		r.log.Errorw("stage failed", "stage", sg.name, "err", err)
		return fmt.Errorf("stage %s: %w", sg.name, err)
	}

	r.log.Infow("stage done",
		"stage", sg.name,
		"read", st.RowsRead,
		"skipped", st.Skipped,
		"rejected", st.Rejected,
		"written", st.RowsWritten,
		"batches", st.BatchesAttempted,
		"batches_failed", st.BatchesFailed,
		"elapsed", st.Duration.Truncate(time.Millisecond).String(),
	)
	return nil
}
