package detectors

import (
	"fmt"
	"regexp"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

// Category labels used by the default rule table.
const (
	CategoryPassword         = "Hardcoded Password"
	CategoryAPIKey           = "API Key"
	CategoryAccessToken      = "Access Token"
	CategorySecretKey        = "Secret Key"
	CategoryAuthToken        = "Auth Token"
	CategoryDatabasePassword = "Database Password"
	CategoryAdminPassword    = "Admin Password"
	CategoryAWSAccessKey     = "AWS Access Key"
	CategoryAWSSecretKey     = "AWS Secret Key"
	CategorySecret           = "Secret"
	CategoryToken            = "Token"
	CategoryConnString       = "Credentials in Connection String"
)

// Rule pairs a regular expression with the category reported when it matches.
// When the expression has a capture group, the first group is the candidate
// credential value; otherwise the whole match is.
type Rule struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Category string `yaml:"category" json:"category"`
}

// ws is Unicode whitespace: RE2's \s covers only ASCII [\t\n\f\r ].
const ws = `[\s\v\x1c-\x1f\x{85}\p{Zs}\x{2028}\x{2029}]*`

// quoted assignment: <key> = "value" or <key> = 'value'
func assign(key string) string {
	return key + ws + `=` + ws + `["']([^"']+)["']`
}

// DefaultRules returns the built-in rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{assign(`password`), CategoryPassword},
		{assign(`passwd`), CategoryPassword},
		{assign(`pwd`), CategoryPassword},

		{assign(`api[_-]?key`), CategoryAPIKey},
		{assign(`apikey`), CategoryAPIKey},
		{assign(`access[_-]?token`), CategoryAccessToken},
		{assign(`secret[_-]?key`), CategorySecretKey},
		{assign(`auth[_-]?token`), CategoryAuthToken},

		{assign(`db[_-]?password`), CategoryDatabasePassword},
		{assign(`database[_-]?password`), CategoryDatabasePassword},
		{assign(`admin[_-]?password`), CategoryAdminPassword},

		{assign(`aws[_-]?access[_-]?key[_-]?id`), CategoryAWSAccessKey},
		{assign(`aws[_-]?secret[_-]?access[_-]?key`), CategoryAWSSecretKey},

		{assign(`secret`), CategorySecret},
		{assign(`token`), CategoryToken},

		{`://[^:]+:([^@]+)@`, CategoryConnString},
	}
}

type compiledRule struct {
	re       *regexp.Regexp
	category string
	grouped  bool
}

// RuleSet is an immutable, compiled rule table together with the
// false-positive filter applied to every candidate value.
type RuleSet struct {
	rules []compiledRule
	src   []Rule
	fp    *FalsePositives
}

// Compile builds a RuleSet. Every pattern is matched case-insensitively.
// A nil fp means the default false-positive set.
func Compile(rules []Rule, fp *FalsePositives) (*RuleSet, error) {
	if fp == nil {
		fp = DefaultFalsePositives()
	}
	rs := &RuleSet{fp: fp, src: append([]Rule(nil), rules...)}
	for i, r := range rules {
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("rule %d: empty category", i)
		}
		re, err := regexp.Compile(`(?i)` + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Category, err)
		}
		rs.rules = append(rs.rules, compiledRule{re: re, category: r.Category, grouped: re.NumSubexp() > 0})
	}
	return rs, nil
}

// MustCompileDefaults compiles the built-in table. It panics only if the
// built-in patterns are broken.
func MustCompileDefaults() *RuleSet {
	rs, err := Compile(DefaultRules(), nil)
	if err != nil {
		panic(err)
	}
	return rs
}

// Rules returns a copy of the source rule table.
func (rs *RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.src...)
}

// Len reports the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// FalsePositives returns the filter used by this rule set.
func (rs *RuleSet) FalsePositives() *FalsePositives { return rs.fp }

// Fingerprint identifies the rule table and false-positive set. Two rule
// sets with the same fingerprint produce the same findings for the same input.
func (rs *RuleSet) Fingerprint() string {
	d := xxhash.New()
	for _, r := range rs.src {
		_, _ = d.WriteString(r.Pattern)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(r.Category)
		_, _ = d.WriteString("\x01")
	}
	for _, lit := range rs.fp.Literals() {
		_, _ = d.WriteString(lit)
		_, _ = d.WriteString("\x02")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
