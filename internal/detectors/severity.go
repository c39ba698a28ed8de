package detectors

import (
	"strings"

	"github.com/redactyl/credscan/internal/types"
)

var (
	highKeywords   = []string{"password", "secret key", "aws secret"}
	mediumKeywords = []string{"api key", "token", "credentials"}
)

// SeverityFor classifies a category label. HIGH keywords are checked first,
// so a label carrying both HIGH and MEDIUM keywords is HIGH. Labels matching
// neither set, such as the bare "Secret", are LOW.
func SeverityFor(category string) types.Severity {
	lower := strings.ToLower(category)
	if containsAny(lower, highKeywords) {
		return types.SevHigh
	}
	if containsAny(lower, mediumKeywords) {
		return types.SevMed
	}
	return types.SevLow
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
