// Command flightgraph loads the OpenFlights dataset (airports, airlines,
// routes) into a Neo4j property graph. It resolves configuration from the
// environment (optionally a .env file) with flag overrides, ensures the
// uniqueness constraints, and runs the three load stages in order, always
// finishing with a printed run summary.
//
// Exit status is 0 on completion even when individual rows or batches
// failed; it is non-zero only for fatal errors (invalid config, connection
// failure, schema init failure, unreadable input file).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"flightgraph/internal/config"
	"flightgraph/internal/etl"
	"flightgraph/internal/graph"
	"flightgraph/internal/logging"
	"flightgraph/internal/metrics"
	"flightgraph/internal/metrics/prompush"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; the environment proper always wins.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	flag.StringVar(&cfg.URI, "uri", cfg.URI, "Bolt URI of the graph database (overrides NEO4J_URI)")
	flag.StringVar(&cfg.User, "user", cfg.User, "database username (overrides NEO4J_USER)")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "database password (overrides NEO4J_PASSWORD)")
	flag.StringVar(&cfg.Database, "database", cfg.Database, "database name; empty selects the server default")
	flag.StringVar(&cfg.AirportsPath, "airports", cfg.AirportsPath, "path to airports.dat")
	flag.StringVar(&cfg.AirlinesPath, "airlines", cfg.AirlinesPath, "path to airlines.dat")
	flag.StringVar(&cfg.RoutesPath, "routes", cfg.RoutesPath, "path to routes.dat")
	flag.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "rows per write transaction")
	flag.StringVar(&cfg.RouteMode, "route-mode", cfg.RouteMode, `route write mode: "create" (append, duplicates on re-run) or "merge" (idempotent on composite key)`)
	flag.StringVar(&cfg.MetricsBackend, "metrics-backend", cfg.MetricsBackend, "metrics backend (pushgateway, none)")
	flag.StringVar(&cfg.PushgatewayURL, "pushgateway-url", cfg.PushgatewayURL, "Pushgateway base URL (overrides PUSHGATEWAY_URL)")
	validate := flag.Bool("validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	log, err := logging.New(cfg.AppEnv, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Error("configuration is invalid")
		return 1
	}
	if *validate {
		log.Info("configuration is valid")
		return 0
	}

	switch cfg.MetricsBackend {
	case "pushgateway":
		b, err := prompush.NewBackend(cfg.Job, cfg.PushgatewayURL)
		if err != nil {
			log.Warnw("metrics backend init failed; using nop", "err", err)
			break
		}
		log.Infow("metrics enabled", "backend", "pushgateway", "url", cfg.PushgatewayURL, "job", cfg.Job)
		metrics.SetBackend(b)
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Warnw("metrics flush failed", "err", err)
			}
		}()

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		log.Warnw("unknown metrics backend; metrics disabled", "backend", cfg.MetricsBackend)
	}

	ctx := context.Background()

	client, err := graph.Connect(ctx, cfg.URI, cfg.User, cfg.Password, cfg.Database, log)
	if err != nil {
		log.Errorw("connect failed", "err", err)
		return 1
	}
	defer client.Close(ctx) //nolint:errcheck

	session := client.Session(ctx)
	defer session.Close(ctx) //nolint:errcheck

	summary, runErr := etl.New(cfg, session, log).Run(ctx)

	// The summary prints on every path, including fatal ones.
	fmt.Print(summary.Render())

	if runErr != nil {
		log.Errorw("load failed", "err", runErr)
		return 1
	}
	return 0
}
