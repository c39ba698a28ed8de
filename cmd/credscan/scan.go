package credscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redactyl/credscan/internal/audit"
	"github.com/redactyl/credscan/internal/config"
	"github.com/redactyl/credscan/internal/engine"
	"github.com/redactyl/credscan/internal/git"
	"github.com/redactyl/credscan/internal/log"
	"github.com/redactyl/credscan/internal/report"
)

var (
	formats = []string{"text", "table", "json", "sarif"}
	levels  = []string{"none", "low", "medium", "high"}
)

type scanOptions struct {
	path     string
	format   string
	failOn   string
	include  string
	exclude  string
	maxBytes int64
	preview  int
	baseline string
	audit    bool
}

func newScanCmd(o *options) *cobra.Command {
	so := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree for hardcoded credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, o, so)
		},
	}
	cmd.Flags().StringVarP(&so.path, "path", "p", ".", "path to scan")
	cmd.Flags().StringVarP(&so.format, "format", "f", "text", "output format: "+strings.Join(formats, "|"))
	cmd.Flags().StringVar(&so.failOn, "fail-on", "none", "exit 1 when findings reach this severity: "+strings.Join(levels, "|"))
	cmd.Flags().StringVar(&so.include, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&so.exclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&so.maxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().IntVar(&so.preview, "preview", report.DefaultPreviewLength, "characters of each line shown in text output")
	cmd.Flags().StringVar(&so.baseline, "baseline", "", "baseline file (default <path>/"+report.DefaultBaselineFile+" when present)")
	cmd.Flags().BoolVar(&so.audit, "audit", false, "append a summary of this scan to the audit history")
	return cmd
}

func (so *scanOptions) layer(cmd *cobra.Command, o *options) config.FileConfig {
	fc := persistentLayer(cmd, o)
	if cmd.Flags().Changed("format") {
		fc.Format = strPtr(so.format)
	}
	if cmd.Flags().Changed("fail-on") {
		fc.FailOn = strPtr(so.failOn)
	}
	if cmd.Flags().Changed("include") {
		fc.Include = strPtr(so.include)
	}
	if cmd.Flags().Changed("exclude") {
		fc.Exclude = strPtr(so.exclude)
	}
	if cmd.Flags().Changed("max-bytes") {
		fc.MaxBytes = int64Ptr(so.maxBytes)
	}
	if cmd.Flags().Changed("preview") {
		fc.PreviewLength = intPtr(so.preview)
	}
	return fc
}

func runScan(cmd *cobra.Command, args []string, o *options, so *scanOptions) error {
	if err := log.Setup(o.verbose); err != nil {
		return err
	}
	root, err := resolveRoot(args, so.path)
	if err != nil {
		return err
	}
	fc, err := resolveConfig(o, root, so.layer(cmd, o))
	if err != nil {
		return err
	}
	format := strings.ToLower(valueOr(fc.Format, "text"))
	if !oneOf(format, formats) {
		return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(formats, "|"))
	}
	failOn := strings.ToLower(valueOr(fc.FailOn, "none"))
	if !oneOf(failOn, levels) {
		return fmt.Errorf("unknown fail-on level %q (want %s)", failOn, strings.Join(levels, "|"))
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	cfg := engineConfig(root, fc, o)

	// Optional progress counter, only when a person is watching stderr
	progressed := 0
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if total, err := engine.CountTargets(cfg); err == nil && total > 0 {
			cfg.Progress = func() {
				progressed++
				if progressed%10 == 0 || progressed == total {
					pct := float64(progressed) / float64(total) * 100
					_, _ = fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
				}
			}
		}
	}

	s, err := engine.New(cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stderr, "Scanning repository: %s\n", root)
	res, err := s.ScanRepository(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if progressed > 0 {
		_, _ = fmt.Fprintln(stderr)
	}
	_, _ = fmt.Fprintf(stderr, "\nScanned %d files\n", res.FilesScanned)
	_, _ = fmt.Fprintf(stderr, "Found %d potential issues\n\n", len(res.Findings))

	findings := res.Findings
	basePath := so.baseline
	if basePath == "" {
		basePath = filepath.Join(root, report.DefaultBaselineFile)
	}
	if base, err := report.LoadBaseline(basePath); err == nil {
		findings = report.FilterNewFindings(findings, base)
		log.Infof("baseline %s hides %d findings", basePath, len(res.Findings)-len(findings))
	} else if so.baseline != "" {
		return fmt.Errorf("load baseline: %w", err)
	}

	if so.audit {
		rec := audit.NewRecord(root, res.Findings, findings, res.FilesScanned, len(res.Errors), res.Duration)
		if err := audit.New(root).Append(rec); err != nil {
			log.Warnf("unable to write audit record: %v", err)
		}
	}

	opts := report.PrintOptions{
		NoColor:       !useColor(stdout, valueOr(fc.NoColor, false)),
		PreviewLength: valueOr(fc.PreviewLength, report.DefaultPreviewLength),
	}
	switch format {
	case "json":
		repo, commit, branch := git.RepoMetadata(root)
		opts.FilesScanned, opts.Duration = res.FilesScanned, res.Duration
		meta := report.JSONMeta{Version: version, Repo: repo, Commit: commit, Branch: branch}
		if err := report.WriteJSON(stdout, findings, meta, opts); err != nil {
			return fmt.Errorf("json error: %w", err)
		}
	case "sarif":
		stats := map[string]int{"filesScanned": res.FilesScanned, "readErrors": len(res.Errors)}
		if err := report.WriteSARIFWithStats(stdout, findings, version, stats); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case "table":
		opts.FilesScanned, opts.Duration = res.FilesScanned, res.Duration
		if err := report.PrintTable(stdout, findings, opts); err != nil {
			return err
		}
	default:
		report.Generate(stdout, findings, opts)
	}

	if report.ShouldFail(findings, failOn) {
		_, _ = fmt.Fprintf(stderr, "credscan: findings at or above %s severity\n", failOn)
		return ErrThresholdExceeded
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
