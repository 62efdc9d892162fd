package domain_test

import (
	"testing"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIndexCache_IsInvalidated(t *testing.T) {
	cache := &domain.IndexCache{ConfigHash: "def456"}

	t.Run("same hash", func(t *testing.T) {
		assert.False(t, cache.IsInvalidated("def456"))
	})

	t.Run("different hash", func(t *testing.T) {
		assert.True(t, cache.IsInvalidated("changed"))
	})
}

func TestIndexCache_Lookup(t *testing.T) {
	cands := []domain.Candidate{{Priority: domain.PriorityI18n, Key: "cta", Line: 4, Column: 10}}
	cache := &domain.IndexCache{Files: map[string]*domain.CachedFile{
		"src/Hero.tsx": {Size: 120, ModTime: 42, Candidates: cands},
	}}

	got, ok := cache.Lookup(domain.SourceFile{RelPath: "src/Hero.tsx", Size: 120, ModTime: 42})
	assert.True(t, ok)
	assert.Equal(t, cands, got)

	_, ok = cache.Lookup(domain.SourceFile{RelPath: "src/Hero.tsx", Size: 121, ModTime: 42})
	assert.False(t, ok, "size change invalidates")

	_, ok = cache.Lookup(domain.SourceFile{RelPath: "src/Hero.tsx", Size: 120, ModTime: 43})
	assert.False(t, ok, "mtime change invalidates")

	var nilCache *domain.IndexCache
	_, ok = nilCache.Lookup(domain.SourceFile{RelPath: "src/Hero.tsx"})
	assert.False(t, ok)
}
