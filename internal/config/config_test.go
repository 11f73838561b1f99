package config

import "testing"

func TestFromEnv_defaults(t *testing.T) {
	for _, k := range []string{
		"NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "NEO4J_DATABASE",
		"FLIGHTGRAPH_AIRPORTS", "FLIGHTGRAPH_AIRLINES", "FLIGHTGRAPH_ROUTES",
		"FLIGHTGRAPH_BATCH_SIZE", "FLIGHTGRAPH_ROUTE_MODE",
	} {
		t.Setenv(k, "")
	}

	c := FromEnv()

	if got, want := c.URI, DefaultURI; got != want {
		t.Fatalf("URI = %q, want %q", got, want)
	}
	if got, want := c.User, DefaultUser; got != want {
		t.Fatalf("User = %q, want %q", got, want)
	}
	if got, want := c.BatchSize, DefaultBatchSize; got != want {
		t.Fatalf("BatchSize = %d, want %d", got, want)
	}
	if got, want := c.RouteMode, RouteModeCreate; got != want {
		t.Fatalf("RouteMode = %q, want %q", got, want)
	}
	if got, want := c.AirportsPath, "airports.dat"; got != want {
		t.Fatalf("AirportsPath = %q, want %q", got, want)
	}
}

func TestFromEnv_overrides(t *testing.T) {
	t.Setenv("NEO4J_URI", "neo4j://db:7687")
	t.Setenv("NEO4J_PASSWORD", "s3cret")
	t.Setenv("FLIGHTGRAPH_BATCH_SIZE", "250")
	t.Setenv("FLIGHTGRAPH_ROUTE_MODE", "merge")

	c := FromEnv()

	if got, want := c.URI, "neo4j://db:7687"; got != want {
		t.Fatalf("URI = %q, want %q", got, want)
	}
	if got, want := c.Password, "s3cret"; got != want {
		t.Fatalf("Password = %q, want %q", got, want)
	}
	if got, want := c.BatchSize, 250; got != want {
		t.Fatalf("BatchSize = %d, want %d", got, want)
	}
	if got, want := c.RouteMode, RouteModeMerge; got != want {
		t.Fatalf("RouteMode = %q, want %q", got, want)
	}
}

func TestFromEnv_badIntFallsBack(t *testing.T) {
	t.Setenv("FLIGHTGRAPH_BATCH_SIZE", "not-a-number")

	c := FromEnv()

	if got, want := c.BatchSize, DefaultBatchSize; got != want {
		t.Fatalf("BatchSize = %d, want default %d", got, want)
	}
}
