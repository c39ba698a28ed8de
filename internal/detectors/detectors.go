package detectors

import (
	"strings"
	"unicode/utf8"

	"github.com/redactyl/credscan/internal/types"
)

// ScanLine applies every rule, in order, to a single line. Each rule
// contributes one finding per non-overlapping match whose candidate value is
// not a false positive.
func (rs *RuleSet) ScanLine(path string, lineNo int, line string) []types.Finding {
	if ignoredLine(line) {
		return nil
	}
	var out []types.Finding
	for _, r := range rs.rules {
		for _, m := range r.re.FindAllStringSubmatchIndex(line, -1) {
			candidate := line[m[0]:m[1]]
			if r.grouped {
				// an unmatched optional group yields "", which is suppressed below
				candidate = ""
				if m[2] >= 0 {
					candidate = line[m[2]:m[3]]
				}
			}
			if rs.fp.Match(candidate) {
				continue
			}
			out = append(out, types.Finding{
				Path:     path,
				Line:     lineNo,
				Column:   utf8.RuneCountInString(line[:m[0]]) + 1,
				Category: r.category,
				Severity: SeverityFor(r.category),
				Content:  strings.TrimSpace(line),
			})
		}
	}
	return out
}

// ScanData scans file content line by line. Undecodable bytes are dropped
// rather than failing the file.
func (rs *RuleSet) ScanData(path string, data []byte) []types.Finding {
	var out []types.Finding
	eachLine(decodeText(data), func(n int, line string) {
		out = append(out, rs.ScanLine(path, n, line)...)
	})
	return out
}

// RuleInfo describes one rule for listings.
type RuleInfo struct {
	Pattern  string
	Category string
	Severity types.Severity
}

// Describe returns the rule table with each rule's severity, in order.
func (rs *RuleSet) Describe() []RuleInfo {
	out := make([]RuleInfo, 0, len(rs.src))
	for _, r := range rs.src {
		out = append(out, RuleInfo{Pattern: r.Pattern, Category: r.Category, Severity: SeverityFor(r.Category)})
	}
	return out
}
