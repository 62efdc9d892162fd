package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locaudit/locaudit/internal/adapters/outbound/gitinfo"
)

func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "web", "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web", "src", "App.tsx"), []byte("<h1>Hi</h1>"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("web/src/App.tsx")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestGitInfo_IsGitRepo(t *testing.T) {
	dir, _ := initRepo(t)
	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(dir))
	assert.True(t, gi.IsGitRepo(filepath.Join(dir, "web")), "subdirectories resolve to the repository")
	assert.False(t, gi.IsGitRepo(t.TempDir()))
}

func TestGitInfo_CommitHash(t *testing.T) {
	dir, want := initRepo(t)

	hash, err := gitinfo.New().CommitHash(filepath.Join(dir, "web"))
	require.NoError(t, err)
	assert.Equal(t, want, hash)
	assert.Len(t, hash, 40)
}

func TestGitInfo_CommitHash_EmptyRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = gitinfo.New().CommitHash(dir)
	assert.Error(t, err, "no HEAD before the first commit")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.Error(t, err)
}
