package report

import (
	"encoding/json"
	"io"

	"github.com/redactyl/credscan/internal/types"
)

// Envelope is the JSON report document.
type Envelope struct {
	Tool         string          `json:"tool"`
	Version      string          `json:"version"`
	Repo         string          `json:"repo,omitempty"`
	Commit       string          `json:"commit,omitempty"`
	Branch       string          `json:"branch,omitempty"`
	FilesScanned int             `json:"files_scanned"`
	DurationMS   int64           `json:"duration_ms"`
	Summary      Summary         `json:"summary"`
	Findings     []types.Finding `json:"findings"`
}

// JSONMeta carries the non-finding fields of the envelope.
type JSONMeta struct {
	Version string
	Repo    string
	Commit  string
	Branch  string
}

// WriteJSON writes the sorted findings inside an Envelope.
func WriteJSON(w io.Writer, findings []types.Finding, meta JSONMeta, opts PrintOptions) error {
	sorted := Sorted(findings)
	if sorted == nil {
		sorted = []types.Finding{}
	}
	env := Envelope{
		Tool:         ToolName,
		Version:      meta.Version,
		Repo:         meta.Repo,
		Commit:       meta.Commit,
		Branch:       meta.Branch,
		FilesScanned: opts.FilesScanned,
		DurationMS:   opts.Duration.Milliseconds(),
		Summary:      Summarize(sorted),
		Findings:     sorted,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
