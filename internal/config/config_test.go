package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/credscan/internal/detectors"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	body := `threads: 4
max_bytes: 123
preview_length: 40
fail_on: high
skip_dirs: [vendor, .git]
extensions: [.go]
rules:
  - pattern: 'session_id\s*=\s*"([^"]+)"'
    category: Session Token
`
	p := writeTemp(t, dir, "credscan.yaml", body)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 4, *cfg.Threads)
	require.NotNil(t, cfg.MaxBytes)
	assert.Equal(t, int64(123), *cfg.MaxBytes)
	require.NotNil(t, cfg.PreviewLength)
	assert.Equal(t, 40, *cfg.PreviewLength)
	require.NotNil(t, cfg.FailOn)
	assert.Equal(t, "high", *cfg.FailOn)
	assert.Equal(t, []string{"vendor", ".git"}, cfg.SkipDirs)
	assert.Equal(t, []string{".go"}, cfg.Extensions)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "Session Token", cfg.Rules[0].Category)
	assert.Nil(t, cfg.SkipPaths)
	assert.Nil(t, cfg.FalsePositives)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yml", "threads: [not, an, int]\n")
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "credscan.yaml", "threads: 1\n")
	writeTemp(t, dir, ".credscan.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .credscan.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadLocal(dir)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "credscan")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "threads: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.Threads)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMerge_FirstWins(t *testing.T) {
	one, two := 1, 2
	hi := "high"
	local := FileConfig{Threads: &one, SkipDirs: []string{"a"}}
	global := FileConfig{Threads: &two, FailOn: &hi, SkipDirs: []string{"b"}, Extensions: []string{".go"}}
	got := Merge(local, global)
	require.NotNil(t, got.Threads)
	assert.Equal(t, 1, *got.Threads)
	assert.Equal(t, []string{"a"}, got.SkipDirs)
	assert.Equal(t, []string{".go"}, got.Extensions)
	require.NotNil(t, got.FailOn)
	assert.Equal(t, "high", *got.FailOn)
	assert.Nil(t, got.Rules)
}

func TestDefaults_RoundTrip(t *testing.T) {
	b, err := yaml.Marshal(Defaults())
	require.NoError(t, err)
	var back FileConfig
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, DefaultSkipDirs(), back.SkipDirs)
	assert.Equal(t, detectors.DefaultRules(), back.Rules)
	assert.Contains(t, back.FalsePositives, "changeme")
}
