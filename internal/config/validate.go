// This file adds a lightweight linter/validator for Config values. It performs
// static checks over a resolved Config and returns a list of issues (errors
// and warnings) that callers can surface in the CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users
	// but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "batch_size"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not mutate the
// config; callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.URI) == "" {
		issues = append(issues, Issue{SeverityError, "uri", "database URI must not be empty; set NEO4J_URI or pass --uri"})
	}
	if strings.TrimSpace(c.User) == "" {
		issues = append(issues, Issue{SeverityError, "user", "database user must not be empty; set NEO4J_USER or pass --user"})
	}
	if c.Password == "" {
		issues = append(issues, Issue{SeverityError, "password", "database password must not be empty; set NEO4J_PASSWORD or pass --password"})
	}

	for path, p := range map[string]string{
		"airports": c.AirportsPath,
		"airlines": c.AirlinesPath,
		"routes":   c.RoutesPath,
	} {
		if strings.TrimSpace(p) == "" {
			issues = append(issues, Issue{SeverityError, path, "input file path must not be empty"})
		}
	}

	if c.BatchSize <= 0 {
		issues = append(issues, Issue{SeverityError, "batch_size", fmt.Sprintf("batch size must be > 0, got %d", c.BatchSize)})
	} else if c.BatchSize > 100_000 {
		issues = append(issues, Issue{SeverityWarning, "batch_size", fmt.Sprintf("batch size %d is unusually large; each batch is one transaction", c.BatchSize)})
	}

	switch c.RouteMode {
	case RouteModeCreate, RouteModeMerge:
	default:
		issues = append(issues, Issue{SeverityError, "route_mode", fmt.Sprintf("unknown route mode %q; expected %q or %q", c.RouteMode, RouteModeCreate, RouteModeMerge)})
	}

	if c.ErrorSample < 0 {
		issues = append(issues, Issue{SeverityError, "error_sample", fmt.Sprintf("error sample must be >= 0, got %d", c.ErrorSample)})
	}

	switch c.MetricsBackend {
	case "", "none", "pushgateway":
	default:
		issues = append(issues, Issue{SeverityWarning, "metrics_backend", fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", c.MetricsBackend)})
	}
	if c.MetricsBackend == "pushgateway" && strings.TrimSpace(c.PushgatewayURL) == "" {
		issues = append(issues, Issue{SeverityError, "pushgateway_url", "pushgateway backend requires PUSHGATEWAY_URL or --pushgateway-url"})
	}

	return issues
}

// HasErrors reports whether any issue carries SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
