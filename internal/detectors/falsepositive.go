package detectors

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	reMaskOnly  = regexp.MustCompile(`(?i)^[*x]+$`)
	reVarBraced = regexp.MustCompile(`^\$\{.+\}$`)
	reVarRef    = regexp.MustCompile(`^\$.+$`)
)

// minValueLen is the shortest candidate value that can be reported.
const minValueLen = 3

// defaultFalsePositiveLiterals are placeholder values seen in docs, samples
// and templates.
var defaultFalsePositiveLiterals = []string{
	"password", "your_password", "changeme", "example",
	"secret", "xxxx", "****", "placeholder", "none",
	"null", "dummy", "test", "sample", "<password>",
	"${password}", "$password", "{password}",
	"p@ssw0rd", "p@$$w0rd", "testpassword", "dummypassword",
	"your_api_key", "your_secret", "insert_key_here",
	"my_secret_key", "replace_me", "mysecretkey",
	"examplekey", "yourkeyhere", "your-key-here",
}

// DefaultFalsePositiveLiterals returns a copy of the built-in literal set.
func DefaultFalsePositiveLiterals() []string {
	return append([]string(nil), defaultFalsePositiveLiterals...)
}

// FalsePositives decides whether a captured value is a placeholder rather
// than a real credential. It is immutable after construction.
type FalsePositives struct {
	literals map[string]bool
}

// NewFalsePositives builds a filter from literal values. Literals are
// compared case-insensitively.
func NewFalsePositives(literals []string) *FalsePositives {
	fp := &FalsePositives{literals: make(map[string]bool, len(literals))}
	for _, l := range literals {
		fp.literals[strings.ToLower(l)] = true
	}
	return fp
}

// DefaultFalsePositives returns the built-in filter.
func DefaultFalsePositives() *FalsePositives {
	return NewFalsePositives(defaultFalsePositiveLiterals)
}

// Match reports whether value should be suppressed. Checks run in order and
// stop at the first hit: too short, known literal, mask of '*'/'x',
// variable reference.
func (f *FalsePositives) Match(value string) bool {
	if value == "" || utf8.RuneCountInString(value) < minValueLen {
		return true
	}
	if f.literals[strings.ToLower(value)] {
		return true
	}
	if reMaskOnly.MatchString(value) {
		return true
	}
	return reVarBraced.MatchString(value) || reVarRef.MatchString(value)
}

// Literals returns the literal set in sorted order.
func (f *FalsePositives) Literals() []string {
	out := make([]string, 0, len(f.literals))
	for l := range f.literals {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
