package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// constraintStatements are the uniqueness constraints required before any
// data is written. IF NOT EXISTS makes re-runs a no-op.
var constraintStatements = []string{
	"CREATE CONSTRAINT airport_id IF NOT EXISTS FOR (a:Airport) REQUIRE a.airport_id IS UNIQUE",
	"CREATE CONSTRAINT airline_id IF NOT EXISTS FOR (al:Airline) REQUIRE al.airline_id IS UNIQUE",
}

// EnsureConstraints creates the identifier uniqueness constraints. Safe to
// run repeatedly; any error here is fatal to the run since loading without
// the constraints would silently break upsert semantics.
func EnsureConstraints(ctx context.Context, r Runner, log *zap.SugaredLogger) error {
	for _, stmt := range constraintStatements {
		if _, err := r.Exec(ctx, stmt, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}
	log.Infow("constraints ensured", "count", len(constraintStatements))
	return nil
}
