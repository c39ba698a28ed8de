package core

import (
	"context"
	"io"

	"github.com/redactyl/credscan/internal/detectors"
	"github.com/redactyl/credscan/internal/engine"
	"github.com/redactyl/credscan/internal/report"
	"github.com/redactyl/credscan/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result
type Rule = detectors.Rule
type Severity = types.Severity
type ReportOptions = report.PrintOptions

const (
	SevHigh = types.SevHigh
	SevMed  = types.SevMed
	SevLow  = types.SevLow
)

// ErrRootNotFound is returned when Config.Root does not exist.
var ErrRootNotFound = engine.ErrRootNotFound

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats runs a scan and returns findings with counts and timing.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// ScanContext is ScanWithStats with cancellation.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanContext(ctx, cfg)
}

// Report writes the human-readable findings report, sorted by severity.
func Report(w io.Writer, findings []Finding, opts ReportOptions) {
	report.Generate(w, findings, opts)
}

// Rules returns the built-in rule table.
func Rules() []Rule { return detectors.DefaultRules() }

// DefaultFalsePositives returns the built-in placeholder literals, for
// callers that want to extend rather than replace them.
func DefaultFalsePositives() []string { return detectors.DefaultFalsePositiveLiterals() }

// SeverityFor classifies a category label.
func SeverityFor(category string) Severity { return detectors.SeverityFor(category) }
