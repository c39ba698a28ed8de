package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644))

	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	_, err = r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:acme/widgets.git"}})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestRepoMetadata(t *testing.T) {
	dir, want := initRepo(t)

	repo, commit, branch := RepoMetadata(dir)
	assert.Equal(t, want, commit)
	assert.Equal(t, "master", branch)
	assert.Equal(t, "acme/widgets", repo)
}

func TestRepoMetadata_Subdirectory(t *testing.T) {
	dir, want := initRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, commit, _ := RepoMetadata(sub)
	assert.Equal(t, want, commit)
}

func TestRepoMetadata_NotARepo(t *testing.T) {
	repo, commit, branch := RepoMetadata(t.TempDir())
	assert.Empty(t, repo)
	assert.Empty(t, commit)
	assert.Empty(t, branch)

	repo, commit, branch = RepoMetadata(filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, repo + commit + branch)
}

func TestShortRepoName(t *testing.T) {
	cases := map[string]string{
		"git@github.com:acme/widgets.git":     "acme/widgets",
		"https://github.com/acme/widgets.git": "acme/widgets",
		"ssh://git@gitlab.local/grp/proj":     "grp/proj",
		"widgets":                             "widgets",
	}
	for in, want := range cases {
		assert.Equal(t, want, ShortRepoName(in), in)
	}
}
