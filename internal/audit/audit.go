// Package audit keeps an append-only JSON-lines history of scans. Records
// hold counts and locations only; matched line content never reaches disk.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/credscan/internal/report"
	"github.com/redactyl/credscan/internal/types"
)

// FileName is the history file, kept in .git when the root is a repository.
const FileName = "credscan_audit.jsonl"

type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	TotalFindings  int              `json:"total_findings"`
	NewFindings    int              `json:"new_findings"`
	BaselinedCount int              `json:"baselined_count"`
	Summary        report.Summary   `json:"summary"`
	FilesScanned   int              `json:"files_scanned"`
	ReadErrors     int              `json:"read_errors"`
	Duration       string           `json:"duration"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

type FindingSummary struct {
	Path     string         `json:"path"`
	Line     int            `json:"line"`
	Category string         `json:"category"`
	Severity types.Severity `json:"severity"`
}

// Log appends to and reads one history file.
type Log struct {
	path string
}

func New(root string) *Log {
	p := filepath.Join(root, "."+FileName)
	if st, err := os.Stat(filepath.Join(root, ".git")); err == nil && st.IsDir() {
		p = filepath.Join(root, ".git", FileName)
	}
	return &Log{path: p}
}

// Path returns the history file location.
func (a *Log) Path() string { return a.path }

// History returns records newest first. Undecodable lines are skipped.
func (a *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var r ScanRecord
		if err := dec.Decode(&r); err != nil {
			break
		}
		records = append(records, r)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes one record, assigning a scan id when missing.
func (a *Log) Append(r ScanRecord) error {
	if r.ScanID == "" {
		r.ScanID = fmt.Sprintf("scan_%d", r.Timestamp.UnixNano())
	}
	// owner-only: records name the files that leak
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// NewRecord summarizes one scan. all is every finding, reported is what
// remained after the baseline.
func NewRecord(root string, all, reported []types.Finding, filesScanned, readErrors int, d time.Duration) ScanRecord {
	top := make([]FindingSummary, 0, 10)
	for i, f := range report.Sorted(reported) {
		if i >= 10 {
			break
		}
		top = append(top, FindingSummary{Path: f.Path, Line: f.Line, Category: f.Category, Severity: f.Severity})
	}
	return ScanRecord{
		Timestamp:      time.Now().UTC(),
		Root:           root,
		TotalFindings:  len(all),
		NewFindings:    len(reported),
		BaselinedCount: len(all) - len(reported),
		Summary:        report.Summarize(reported),
		FilesScanned:   filesScanned,
		ReadErrors:     readErrors,
		Duration:       d.Round(time.Millisecond).String(),
		TopFindings:    top,
	}
}
