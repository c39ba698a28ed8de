package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/redactyl/credscan/internal/report"
)

// MarshalFindings writes findings as an indented JSON array in report order
// (severity, then path). An empty input is written as [] rather than null.
func MarshalFindings(w io.Writer, findings []Finding) error {
	out := report.Sorted(findings)
	if out == nil {
		out = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// UnmarshalFindings decodes either a bare findings array or the envelope
// written by `credscan scan --format json`.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode findings: empty input")
	}
	if data[0] == '{' {
		var env report.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode findings envelope: %w", err)
		}
		return env.Findings, nil
	}
	var fs []Finding
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return fs, nil
}
