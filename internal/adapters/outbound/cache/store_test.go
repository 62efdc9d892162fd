package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locaudit/locaudit/internal/adapters/outbound/cache"
	"github.com/locaudit/locaudit/internal/domain"
)

func sampleCache(projectPath string) *domain.IndexCache {
	return &domain.IndexCache{
		ProjectPath: projectPath,
		ConfigHash:  "abc123",
		Files: map[string]*domain.CachedFile{
			"src/App.tsx": {
				Size:    120,
				ModTime: 1700000000,
				Candidates: []domain.Candidate{
					{Priority: domain.PriorityJSX, Key: "welcome back", Line: 4, Column: 9},
				},
			},
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(sampleCache(projectPath)))

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, projectPath, loaded.ProjectPath)
	assert.Equal(t, "abc123", loaded.ConfigHash)
	cands, ok := loaded.Lookup(domain.SourceFile{RelPath: "src/App.tsx", Size: 120, ModTime: 1700000000})
	require.True(t, ok)
	assert.Equal(t, "welcome back", cands[0].Key)
}

func TestStore_LoadNonExistent(t *testing.T) {
	loaded, err := cache.New().Load(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	projectPath := t.TempDir()
	dir := filepath.Join(projectPath, ".locaudit", "cache")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte("{not json"), 0644))

	_, err := cache.New().Load(projectPath)
	assert.Error(t, err)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(sampleCache(projectPath)))
	require.NoError(t, store.Invalidate(projectPath))

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, store.Invalidate(projectPath), "invalidating twice is fine")
}

func TestStore_SaveCreatesDirectoryWithoutTempFiles(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	cacheDir := filepath.Join(projectPath, ".locaudit", "cache")
	_, err := os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err), "cache directory should not exist before save")

	require.NoError(t, store.Save(sampleCache(projectPath)))
	require.NoError(t, store.Save(sampleCache(projectPath)))

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.json", entries[0].Name())
}
