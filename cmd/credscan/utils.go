package credscan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redactyl/credscan/internal/config"
	"github.com/redactyl/credscan/internal/engine"
)

// resolveRoot picks the scan root from the positional argument or --path.
func resolveRoot(args []string, flagPath string) (string, error) {
	p := flagPath
	if len(args) > 0 && args[0] != "" {
		p = args[0]
	}
	if p == "" {
		p = "."
	}
	return filepath.Abs(p)
}

// resolveConfig layers configuration: explicit --config file > CLI flags >
// repo-local file > global file > built-in defaults. A missing local or
// global file is fine; a broken one is an error.
func resolveConfig(o *options, root string, flags config.FileConfig) (config.FileConfig, error) {
	var explicit, local, global config.FileConfig
	if o.configPath != "" {
		c, err := config.LoadFile(o.configPath)
		if err != nil {
			return config.FileConfig{}, fmt.Errorf("load config: %w", err)
		}
		explicit = c
	}
	c, err := config.LoadLocal(root)
	switch {
	case err == nil:
		local = c
	case !errors.Is(err, config.ErrNotFound):
		return config.FileConfig{}, fmt.Errorf("load local config: %w", err)
	}
	c, err = config.LoadGlobal()
	switch {
	case err == nil:
		global = c
	case !errors.Is(err, config.ErrNotFound):
		return config.FileConfig{}, fmt.Errorf("load global config: %w", err)
	}
	return config.Merge(explicit, flags, local, global), nil
}

// persistentLayer turns explicitly set persistent flags into a config layer.
func persistentLayer(cmd *cobra.Command, o *options) config.FileConfig {
	var fc config.FileConfig
	if cmd.Flags().Changed("threads") {
		fc.Threads = intPtr(o.threads)
	}
	if cmd.Flags().Changed("no-color") {
		fc.NoColor = boolPtr(o.noColor)
	}
	return fc
}

func engineConfig(root string, fc config.FileConfig, o *options) engine.Config {
	return engine.Config{
		Root:           root,
		SkipDirs:       fc.SkipDirs,
		SkipPaths:      fc.SkipPaths,
		Extensions:     fc.Extensions,
		FalsePositives: fc.FalsePositives,
		Rules:          fc.Rules,
		IncludeGlobs:   valueOr(fc.Include, ""),
		ExcludeGlobs:   valueOr(fc.Exclude, ""),
		MaxBytes:       valueOr(fc.MaxBytes, 0),
		Threads:        valueOr(fc.Threads, 0),
		NoCache:        o.noCache,
	}
}

// useColor reports whether w is a terminal that should receive ANSI styling.
func useColor(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
