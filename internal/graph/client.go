// Package graph is the loader's storage layer: a thin wrapper over the
// Neo4j Bolt driver exposing the two operations the loader needs — schema
// constraint setup and batched parameterized writes. Callers treat the
// database as an opaque "run a write, get counters or an error" capability;
// all Cypher lives in this package.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// WriteSummary carries the database-reported counters for one write.
// Written is the statement's own `written` return value when it yields one
// (the route statements report how many rows matched both endpoints, which
// the creation counters cannot: a MERGE that matches reports zero created).
type WriteSummary struct {
	NodesCreated         int
	RelationshipsCreated int
	Written              int
}

// Runner is the narrow write capability consumed by the constraint
// initializer and the batch writer. *Session satisfies it; tests substitute
// fakes.
type Runner interface {
	Exec(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error)
}

// Client owns the driver for the lifetime of a run. It is acquired once at
// process start and must be closed on every exit path.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	log      *zap.SugaredLogger
}

// Connect creates the driver and verifies connectivity before returning, so
// a bad address or credentials fail fast instead of on the first batch.
func Connect(ctx context.Context, uri, user, password, database string, log *zap.SugaredLogger) (*Client, error) {
	auth := neo4j.NoAuth()
	if user != "" {
		auth = neo4j.BasicAuth(user, password, "")
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify connectivity to %s: %w", uri, err)
	}

	log.Infow("connected", "uri", uri, "database", database)
	return &Client{driver: driver, database: database, log: log}, nil
}

// Close releases the driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Session opens a write session. The loader is single-threaded and uses one
// session for the whole run.
func (c *Client) Session(ctx context.Context) *Session {
	return &Session{
		sess: c.driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: c.database,
		}),
	}
}

// Session wraps a Bolt session; each Exec is one managed write transaction.
type Session struct {
	sess neo4j.SessionWithContext
}

// execOutcome carries both the statement's returned value and the driver
// summary out of the managed transaction.
type execOutcome struct {
	written int64
	summary neo4j.ResultSummary
}

// Exec runs cypher with params in a single write transaction and returns
// the summary counters plus the statement's `written` value, if any.
func (s *Session) Exec(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error) {
	res, err := s.sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cur, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		var out execOutcome
		for cur.Next(ctx) {
			if v, ok := cur.Record().Get("written"); ok {
				if n, ok := v.(int64); ok {
					out.written = n
				}
			}
		}
		out.summary, err = cur.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return WriteSummary{}, err
	}

	out := res.(execOutcome)
	counters := out.summary.Counters()
	return WriteSummary{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		Written:              int(out.written),
	}, nil
}

// Close releases the session.
func (s *Session) Close(ctx context.Context) error {
	return s.sess.Close(ctx)
}
