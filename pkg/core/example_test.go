package core_test

import (
	"fmt"
	"os"

	"github.com/redactyl/credscan/pkg/core"
)

// ExampleScan demonstrates how to perform a simple scan of a directory.
func ExampleScan() {
	cfg := core.Config{
		Root:         ".",
		Threads:      4,
		IncludeGlobs: "**/*.yml",
		MaxBytes:     1024 * 1024,
	}

	findings, err := core.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return
	}

	if len(findings) == 0 {
		fmt.Println("No credentials found.")
	} else {
		fmt.Printf("Found %d credentials.\n", len(findings))
		_ = core.MarshalFindings(os.Stdout, findings)
	}
}

// ExampleScanWithStats shows how to run a scan and print the text report.
func ExampleScanWithStats() {
	cfg := core.Config{
		Root:           "deploy",
		Extensions:     []string{".yml", ".yaml"},
		FalsePositives: append(core.DefaultFalsePositives(), "letmein"),
	}

	result, err := core.ScanWithStats(cfg)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Scanned %d files in %s\n", result.FilesScanned, result.Duration)
	core.Report(os.Stdout, result.Findings, core.ReportOptions{PreviewLength: 80})
}
