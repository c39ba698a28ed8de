package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/credscan/internal/types"
)

// PrintTable writes findings as an aligned table followed by the summary line.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No hardcoded credentials found")
		printStats(w, opts)
		return nil
	}
	n := opts.PreviewLength
	if n <= 0 {
		n = DefaultPreviewLength
	}
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Category", "Location", "Content")
	for _, f := range Sorted(findings) {
		row := []string{
			string(f.Severity),
			f.Category,
			fmt.Sprintf("%s:%d", f.Path, f.Line),
			Preview(f.Content, n),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	sum := Summarize(findings)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", sum.Total, sum.High, sum.Medium, sum.Low)
	printStats(w, opts)
	return nil
}
