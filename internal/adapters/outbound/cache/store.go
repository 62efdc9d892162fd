package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/locaudit/locaudit/internal/domain"
)

// Store is a file-based implementation of domain.IndexCacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads a project's index cache. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.IndexCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var c domain.IndexCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding index cache: %w", err)
	}
	return &c, nil
}

// Save atomically replaces the project's cache file, creating directories
// as needed.
func (s *Store) Save(c *domain.IndexCache) error {
	if c == nil {
		return errors.New("nil index cache")
	}
	dir := cacheDir(c.ProjectPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "index-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), cachePath(c.ProjectPath))
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".locaudit", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "index.json")
}
