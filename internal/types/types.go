package types

// Severity is a coarse-grained priority bucket for a finding.
type Severity string

const (
	SevHigh Severity = "HIGH"
	SevMed  Severity = "MEDIUM"
	SevLow  Severity = "LOW"
)

// Rank orders severities for reporting: HIGH < MEDIUM < LOW.
func (s Severity) Rank() int {
	switch s {
	case SevHigh:
		return 0
	case SevMed:
		return 1
	default:
		return 2
	}
}

// Finding describes a line that looks like it carries a hardcoded credential.
// Path is slash-separated and relative to the scan root; Line and Column are
// 1-based, and Column counts Unicode code points.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Content  string   `json:"content"`
}
