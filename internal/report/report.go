// Package report renders scan findings for people and machines: a text
// report, a table, a JSON envelope and SARIF. It also handles baselines and
// the fail-on threshold used by CI.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/redactyl/credscan/internal/types"
)

// DefaultPreviewLength is how many runes of a line the text report shows.
const DefaultPreviewLength = 100

const ruleWidth = 60

var (
	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type PrintOptions struct {
	NoColor       bool
	PreviewLength int // 0 = DefaultPreviewLength
	Duration      time.Duration
	FilesScanned  int
}

// Summary holds per-severity counts.
type Summary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// Summarize counts findings by severity.
func Summarize(findings []types.Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			s.High++
		case types.SevMed:
			s.Medium++
		default:
			s.Low++
		}
	}
	s.Total = len(findings)
	return s
}

// Sort orders findings in place by severity (HIGH first) then path. Ties keep
// their discovery order, so sorting an already sorted slice is a no-op.
func Sort(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Severity.Rank(), findings[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return findings[i].Path < findings[j].Path
	})
}

// Sorted returns a sorted copy, leaving the input untouched.
func Sorted(findings []types.Finding) []types.Finding {
	out := append([]types.Finding(nil), findings...)
	Sort(out)
	return out
}

// Generate writes the human-readable findings report.
func Generate(w io.Writer, findings []types.Finding, opts PrintOptions) {
	style := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}
	if len(findings) == 0 {
		fmt.Fprintln(w, style(cleanStyle, "✓ No hardcoded passwords found!"))
		printStats(w, opts)
		return
	}
	n := opts.PreviewLength
	if n <= 0 {
		n = DefaultPreviewLength
	}

	sorted := Sorted(findings)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "FINDINGS REPORT")
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	for _, f := range sorted {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", style(severityStyle(f.Severity), "["+string(f.Severity)+"]"), f.Category)
		fmt.Fprintf(w, "File: %s:%d\n", f.Path, f.Line)
		fmt.Fprintf(w, "Content: %s\n", Preview(f.Content, n))
		fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	}

	sum := Summarize(sorted)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SUMMARY:")
	fmt.Fprintf(w, "  HIGH severity:   %d\n", sum.High)
	fmt.Fprintf(w, "  MEDIUM severity: %d\n", sum.Medium)
	fmt.Fprintf(w, "  LOW severity:    %d\n", sum.Low)
	fmt.Fprintf(w, "  TOTAL:           %d\n", sum.Total)
	if sum.High > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, style(warnStyle, fmt.Sprintf("⚠ WARNING: %d high severity findings require immediate attention!", sum.High)))
	}
	printStats(w, opts)
}

func printStats(w io.Writer, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	fmt.Fprintln(w)
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// Preview truncates s to at most n runes.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevHigh:
		return sevHighStyle
	case types.SevMed:
		return sevMedStyle
	default:
		return sevLowStyle
	}
}
