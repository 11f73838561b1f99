// Package config defines the runtime configuration for the loader.
//
// Configuration is resolved environment-first (12-factor style): values come
// from the process environment, optionally seeded from a .env file by the
// caller, and may be overridden by command-line flags in cmd. The model is
// intentionally small and dependency-free so it can be constructed directly
// in tests.
package config

import (
	"os"
	"strconv"
)

// Route write modes. See Config.RouteMode.
const (
	// RouteModeCreate appends a FLIGHT relationship per source row. Re-running
	// the loader duplicates relationships; this mirrors the source dataset's
	// append semantics and is the default.
	RouteModeCreate = "create"

	// RouteModeMerge merges FLIGHT relationships on the composite key
	// (source, destination, airline id, equipment), making route loads
	// idempotent. Exact duplicate rows are also collapsed client-side.
	RouteModeMerge = "merge"
)

// Defaults applied by FromEnv when the environment is silent.
const (
	DefaultURI         = "bolt://127.0.0.1:7687"
	DefaultUser        = "neo4j"
	DefaultBatchSize   = 1000
	DefaultErrorSample = 5
	DefaultJob         = "flightgraph"
)

// Config holds everything a single load run needs.
type Config struct {
	// Graph database connection.
	URI      string // bolt:// or neo4j:// URI
	User     string
	Password string
	Database string // optional; empty selects the server default database

	// Input files.
	AirportsPath string
	AirlinesPath string
	RoutesPath   string

	// BatchSize is the number of rows submitted per write transaction.
	BatchSize int

	// RouteMode selects relationship write semantics: RouteModeCreate or
	// RouteModeMerge.
	RouteMode string

	// ErrorSample caps how many row/batch failures are retained verbatim in
	// the run summary; beyond that only counts are kept.
	ErrorSample int

	// Job labels metrics emitted by the run.
	Job string

	// Metrics backend selection ("pushgateway" or "none"/empty).
	MetricsBackend string
	PushgatewayURL string

	// AppEnv selects logger output ("production" for JSON).
	AppEnv string
}

// FromEnv builds a Config from the process environment, applying defaults
// for anything unset. It never fails; Validate reports problems afterwards.
func FromEnv() Config {
	return Config{
		URI:      getenv("NEO4J_URI", DefaultURI),
		User:     getenv("NEO4J_USER", DefaultUser),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),

		AirportsPath: getenv("FLIGHTGRAPH_AIRPORTS", "airports.dat"),
		AirlinesPath: getenv("FLIGHTGRAPH_AIRLINES", "airlines.dat"),
		RoutesPath:   getenv("FLIGHTGRAPH_ROUTES", "routes.dat"),

		BatchSize:   getenvInt("FLIGHTGRAPH_BATCH_SIZE", DefaultBatchSize),
		RouteMode:   getenv("FLIGHTGRAPH_ROUTE_MODE", RouteModeCreate),
		ErrorSample: getenvInt("FLIGHTGRAPH_ERROR_SAMPLE", DefaultErrorSample),
		Job:         getenv("FLIGHTGRAPH_JOB", DefaultJob),

		MetricsBackend: os.Getenv("METRICS_BACKEND"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),

		AppEnv: os.Getenv("APP_ENV"),
	}
}

// getenv returns the environment value for key or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt returns the integer environment value for key, or def when the
// variable is unset, empty, or not an integer.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
