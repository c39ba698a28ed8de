package engine

import (
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/redactyl/credscan/internal/config"
)

// filters is the compiled, read-only form of the path-related configuration.
type filters struct {
	skipDirs   map[string]bool
	skipPaths  []string
	extensions map[string]bool
	includes   []string
	excludes   []string

	// credscan's own config files hold rule patterns that would match themselves
	own map[string]bool
}

func newFilters(cfg Config) filters {
	f := filters{
		skipDirs:   toSet(cfg.SkipDirs, false),
		skipPaths:  append([]string(nil), cfg.SkipPaths...),
		extensions: toSet(cfg.Extensions, true),
		includes:   parseGlobsList(cfg.IncludeGlobs),
		excludes:   parseGlobsList(cfg.ExcludeGlobs),
		own:        toSet(config.LocalNames, false),
	}
	return f
}

func toSet(items []string, lower bool) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		if lower {
			it = strings.ToLower(it)
		}
		m[it] = true
	}
	return m
}

// skipDir reports whether a directory must be pruned before descent.
// rel is slash-separated and relative to the root.
func (f filters) skipDir(name, rel string) bool {
	if f.skipDirs[name] {
		return true
	}
	// every descendant path contains "/"+rel+"/", so a substring hit here
	// excludes the whole subtree
	return f.skipPath("/" + rel + "/")
}

func (f filters) skipPath(p string) bool {
	for _, s := range f.skipPaths {
		if s != "" && strings.Contains(p, s) {
			return true
		}
	}
	return false
}

// wantFile applies the extension allow-list, skip substrings and globs.
func (f filters) wantFile(name, rel string) bool {
	if f.own[name] && !strings.Contains(rel, "/") {
		return false
	}
	if !f.extensions[strings.ToLower(suffix(name))] && !strings.HasPrefix(name, ".env") {
		return false
	}
	if f.skipPath("/" + rel) {
		return false
	}
	return f.allowedByGlobs(rel)
}

// suffix returns the final extension of a file name, treating a leading dot
// as part of the stem: ".env" has no suffix, ".env.local" has ".local".
func suffix(name string) string {
	stem := strings.TrimLeft(name, ".")
	i := strings.LastIndex(stem, ".")
	if i < 0 {
		return ""
	}
	return stem[i:]
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func (f filters) allowedByGlobs(rel string) bool {
	if len(f.includes) > 0 && !matchAnyGlob(rel, f.includes) {
		return false
	}
	if len(f.excludes) > 0 && matchAnyGlob(rel, f.excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
