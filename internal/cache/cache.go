// Package cache stores per-file scan results between runs so unchanged files
// can reuse their findings. Entries are keyed by relative path and validated
// by content hash; the whole DB is discarded when the rule set changes.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/redactyl/credscan/internal/types"
)

// Hit locates one cached finding. The matched line itself is never stored;
// callers rebuild it from the file content that produced the hash.
type Hit struct {
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Category string `json:"category"`
}

// Entry is the cached result for one file.
type Entry struct {
	Hash string `json:"hash"`
	Hits []Hit  `json:"hits,omitempty"`
}

// HitsOf strips findings down to what the cache persists.
func HitsOf(findings []types.Finding) []Hit {
	if len(findings) == 0 {
		return nil
	}
	out := make([]Hit, 0, len(findings))
	for _, f := range findings {
		out = append(out, Hit{Line: f.Line, Column: f.Column, Category: f.Category})
	}
	return out
}

type DB struct {
	// Fingerprint of the rule set that produced the entries
	Fingerprint string `json:"fingerprint"`

	// Path relative to scan root -> cached result
	Entries map[string]Entry `json:"entries"`
}

// Lookup returns the cached hits for rel when its content hash matches.
func (db DB) Lookup(rel, hash string) ([]Hit, bool) {
	e, ok := db.Entries[rel]
	if !ok || e.Hash != hash {
		return nil, false
	}
	return e.Hits, true
}

// Hash returns a fixed-width hex content hash.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// Path returns where the cache for root lives. Inside .git when the root is a
// repository (never scanned, never committed), otherwise under the user cache
// directory so the scan tree is left untouched.
func Path(root string) (string, error) {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "credscancache.json"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "credscan", Hash([]byte(abs))+".json"), nil
}

// Load reads the cache for root. A missing cache, an unreadable one, or one
// written for a different rule set yields an empty DB.
func Load(root, fingerprint string) (DB, error) {
	empty := DB{Fingerprint: fingerprint, Entries: map[string]Entry{}}
	p, err := Path(root)
	if err != nil {
		return empty, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return empty, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return empty, err
	}
	if db.Fingerprint != fingerprint {
		return empty, nil
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p, err := Path(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
