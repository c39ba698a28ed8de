package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/redactyl/credscan/internal/detectors"
)

// FileConfig is the on-disk YAML configuration shape for credscan. List
// fields replace the built-in defaults when present; nil means "not set".
type FileConfig struct {
	SkipDirs       []string         `yaml:"skip_dirs,omitempty"`
	SkipPaths      []string         `yaml:"skip_paths,omitempty"`
	Extensions     []string         `yaml:"extensions,omitempty"`
	FalsePositives []string         `yaml:"false_positives,omitempty"`
	Rules          []detectors.Rule `yaml:"rules,omitempty"`

	Include       *string `yaml:"include,omitempty"`
	Exclude       *string `yaml:"exclude,omitempty"`
	MaxBytes      *int64  `yaml:"max_bytes,omitempty"`
	Threads       *int    `yaml:"threads,omitempty"`
	PreviewLength *int    `yaml:"preview_length,omitempty"`
	NoColor       *bool   `yaml:"no_color,omitempty"`
	FailOn        *string `yaml:"fail_on,omitempty"`
	Format        *string `yaml:"format,omitempty"`
}

// ErrNotFound is returned when no config file exists at a lookup location.
var ErrNotFound = errors.New("config not found")

// LocalNames are the repo-local config file names, in lookup order.
var LocalNames = []string{".credscan.yml", ".credscan.yaml", "credscan.yml", "credscan.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("%w: no local config in %s", ErrNotFound, repoRoot)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, fmt.Errorf("%w: no config dir", ErrNotFound)
	}
	p := filepath.Join(base, "credscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("%w: no global config", ErrNotFound)
}

// Merge layers configs: the first config that sets a field wins.
func Merge(layers ...FileConfig) FileConfig {
	var out FileConfig
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.SkipDirs != nil {
			out.SkipDirs = l.SkipDirs
		}
		if l.SkipPaths != nil {
			out.SkipPaths = l.SkipPaths
		}
		if l.Extensions != nil {
			out.Extensions = l.Extensions
		}
		if l.FalsePositives != nil {
			out.FalsePositives = l.FalsePositives
		}
		if l.Rules != nil {
			out.Rules = l.Rules
		}
		if l.Include != nil {
			out.Include = l.Include
		}
		if l.Exclude != nil {
			out.Exclude = l.Exclude
		}
		if l.MaxBytes != nil {
			out.MaxBytes = l.MaxBytes
		}
		if l.Threads != nil {
			out.Threads = l.Threads
		}
		if l.PreviewLength != nil {
			out.PreviewLength = l.PreviewLength
		}
		if l.NoColor != nil {
			out.NoColor = l.NoColor
		}
		if l.FailOn != nil {
			out.FailOn = l.FailOn
		}
		if l.Format != nil {
			out.Format = l.Format
		}
	}
	return out
}

// Defaults returns a FileConfig populated with every built-in list, suitable
// for writing out as a starting point.
func Defaults() FileConfig {
	return FileConfig{
		SkipDirs:       DefaultSkipDirs(),
		SkipPaths:      DefaultSkipPaths(),
		Extensions:     DefaultExtensions(),
		FalsePositives: detectors.DefaultFalsePositiveLiterals(),
		Rules:          detectors.DefaultRules(),
	}
}
