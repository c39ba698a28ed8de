package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/credscan/internal/types"
)

func TestLoadSave_GitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	// initial load should return empty DB and error
	db, _ := Load(dir, "fp1")
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	f := types.Finding{Path: "a.py", Line: 2, Column: 1, Category: "Token", Severity: types.SevMed, Content: `token = "abc123"`}
	db.Entries["a.py"] = Entry{Hash: "deadbeef", Hits: HitsOf([]types.Finding{f})}
	require.NoError(t, Save(dir, db))

	raw, err := os.ReadFile(filepath.Join(dir, ".git", "credscancache.json"))
	if err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	assert.NotContains(t, string(raw), "abc123", "line content must not be persisted")

	db2, err := Load(dir, "fp1")
	require.NoError(t, err)
	got, ok := db2.Lookup("a.py", "deadbeef")
	require.True(t, ok)
	assert.Equal(t, []Hit{{Line: 2, Column: 1, Category: "Token"}}, got)

	_, ok = db2.Lookup("a.py", "cafebabe")
	assert.False(t, ok, "hash mismatch must miss")
}

func TestLoad_FingerprintMismatchResets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	db := DB{Fingerprint: "old", Entries: map[string]Entry{"a.py": {Hash: "1"}}}
	require.NoError(t, Save(dir, db))

	got, err := Load(dir, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Fingerprint)
	assert.Empty(t, got.Entries)
}

func TestPath_UserCacheDirFallback(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	root := t.TempDir()
	p, err := Path(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cacheHome, "credscan"), filepath.Dir(p))

	require.NoError(t, Save(root, DB{Fingerprint: "x", Entries: map[string]Entry{}}))
	_, err = os.Stat(p)
	assert.NoError(t, err)
	entries, _ := os.ReadDir(root)
	assert.Empty(t, entries, "scan root must stay untouched")
}

func TestHitsOf(t *testing.T) {
	assert.Nil(t, HitsOf(nil))
	got := HitsOf([]types.Finding{
		{Path: "x.py", Line: 3, Column: 5, Category: "Secret", Content: `secret = "s3cr3t!"`},
		{Path: "x.py", Line: 9, Category: "Token", Content: `token = "t0k3n!"`},
	})
	assert.Equal(t, []Hit{{Line: 3, Column: 5, Category: "Secret"}, {Line: 9, Category: "Token"}}, got)
}

func TestHash(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hash(nil))
	assert.Len(t, Hash([]byte("abc")), 16)
	assert.Equal(t, Hash([]byte("abc")), Hash([]byte("abc")))
	assert.NotEqual(t, Hash([]byte("abc")), Hash([]byte("abd")))
}
