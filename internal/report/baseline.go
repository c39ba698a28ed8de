package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/redactyl/credscan/internal/types"
)

// DefaultBaselineFile is written by "baseline update".
const DefaultBaselineFile = "credscan.baseline.json"

// Baseline is a set of accepted finding fingerprints.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}

// FilterNewFindings drops findings already present in the baseline.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[Fingerprint(f)] {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprint identifies a finding independently of its line number, so
// edits elsewhere in the file keep it baselined.
func Fingerprint(f types.Finding) string {
	key := f.Path + "|" + f.Category + "|" + strings.TrimSpace(f.Content)
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// ShouldFail reports whether any finding meets the failOn threshold.
// "none" or an empty/unknown value never fails.
func ShouldFail(findings []types.Finding, failOn string) bool {
	level := map[string]int{"low": 1, "medium": 2, "high": 3}
	th := level[strings.ToLower(failOn)]
	if th == 0 {
		return false
	}
	for _, f := range findings {
		if level[strings.ToLower(string(f.Severity))] >= th {
			return true
		}
	}
	return false
}
