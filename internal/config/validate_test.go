package config

import (
	"strings"
	"testing"
)

// valid returns a Config that passes validation; tests mutate one field at
// a time from this baseline.
func valid() Config {
	return Config{
		URI:          "bolt://127.0.0.1:7687",
		User:         "neo4j",
		Password:     "pw",
		AirportsPath: "airports.dat",
		AirlinesPath: "airlines.dat",
		RoutesPath:   "routes.dat",
		BatchSize:    1000,
		RouteMode:    RouteModeCreate,
		ErrorSample:  5,
		Job:          "flightgraph",
	}
}

func TestValidate_ok(t *testing.T) {
	issues := Validate(valid())
	if len(issues) != 0 {
		t.Fatalf("Validate() = %v, want no issues", issues)
	}
}

func TestValidate_errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"empty uri", func(c *Config) { c.URI = " " }, "uri"},
		{"empty user", func(c *Config) { c.User = "" }, "user"},
		{"empty password", func(c *Config) { c.Password = "" }, "password"},
		{"empty airports path", func(c *Config) { c.AirportsPath = "" }, "airports"},
		{"empty airlines path", func(c *Config) { c.AirlinesPath = "" }, "airlines"},
		{"empty routes path", func(c *Config) { c.RoutesPath = "" }, "routes"},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, "batch_size"},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }, "batch_size"},
		{"bad route mode", func(c *Config) { c.RouteMode = "append" }, "route_mode"},
		{"negative error sample", func(c *Config) { c.ErrorSample = -1 }, "error_sample"},
		{"pushgateway without url", func(c *Config) { c.MetricsBackend = "pushgateway" }, "pushgateway_url"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)

			issues := Validate(c)
			if !HasErrors(issues) {
				t.Fatalf("Validate() = %v, want at least one error", issues)
			}
			found := false
			for _, iss := range issues {
				if iss.Path == tc.path && iss.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Fatalf("Validate() = %v, want error at path %q", issues, tc.path)
			}
		})
	}
}

func TestValidate_warnings(t *testing.T) {
	c := valid()
	c.BatchSize = 500_000
	c.MetricsBackend = "statsd"

	issues := Validate(c)
	if HasErrors(issues) {
		t.Fatalf("Validate() = %v, want warnings only", issues)
	}
	if len(issues) != 2 {
		t.Fatalf("Validate() returned %d issues, want 2 warnings", len(issues))
	}
	for _, iss := range issues {
		if iss.Severity != SeverityWarning {
			t.Fatalf("issue %v: severity = %q, want warning", iss, iss.Severity)
		}
	}
}

func TestIssue_Error(t *testing.T) {
	iss := Issue{SeverityError, "batch_size", "must be > 0"}
	if got := iss.Error(); !strings.Contains(got, "batch_size") {
		t.Fatalf("Error() = %q, want it to mention the path", got)
	}
}
