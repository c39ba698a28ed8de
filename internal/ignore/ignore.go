// Package ignore reads .credscanignore files: one pattern per line, '#'
// comments, a trailing '/' marks a directory. Patterns are doublestar globs
// matched against the slash-separated relative path and its base name.
package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".credscanignore"

// Matcher holds compiled ignore patterns. The zero value matches nothing.
type Matcher struct {
	patterns []string
	dirs     []string
}

// Load reads patterns from path. A missing file yields an empty matcher and
// the open error.
func Load(p string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(p)
	if err != nil {
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// Match reports whether the relative path rel is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := path.Base(rel)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	for _, d := range m.dirs {
		if m.matchDir(d, rel) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the relative directory rel is ignored, so the
// walker can prune it before descent.
func (m Matcher) MatchDir(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, d := range m.dirs {
		if ok, _ := doublestar.Match(d, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(d, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// a file is inside an ignored directory when any of its parent directories matches
func (m Matcher) matchDir(pattern, rel string) bool {
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		dir := strings.Join(parts[:i], "/")
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, parts[i-1]); ok {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool {
	return len(m.patterns) == 0 && len(m.dirs) == 0
}

// Append adds patterns to the ignore file at root, creating it if needed.
// Patterns already present are skipped. It returns the patterns written.
func Append(root string, patterns ...string) ([]string, error) {
	p := filepath.Join(root, FileName)
	existing := map[string]bool{}
	endsWithNewline := true
	if b, err := os.ReadFile(p); err == nil {
		for _, line := range strings.Split(string(b), "\n") {
			existing[strings.TrimSpace(line)] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var added []string
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" || existing[pat] {
			continue
		}
		existing[pat] = true
		added = append(added, pat)
	}
	if len(added) == 0 {
		return nil, nil
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var b strings.Builder
	if !endsWithNewline {
		b.WriteByte('\n')
	}
	for _, pat := range added {
		b.WriteString(pat)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return nil, err
	}
	return added, nil
}
