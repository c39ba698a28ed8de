// Package core provides a small, stable facade over credscan's internal
// engine for external integrations. It re-exports a narrow API surface so
// other tools can depend on a stable import path without reaching into
// internal packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	res, err := core.ScanWithStats(cfg)
//	if err != nil { /* handle */ }
//	core.Report(os.Stdout, res.Findings, core.ReportOptions{NoColor: true})
package core
