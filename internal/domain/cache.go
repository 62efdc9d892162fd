package domain

import "sort"

// IndexCache stores extracted candidates per source file.
type IndexCache struct {
	ProjectPath string                 `json:"project_path"`
	ConfigHash  string                 `json:"config_hash"`
	Files       map[string]*CachedFile `json:"files"`
}

// CachedFile is valid while the file's size and mtime are unchanged.
type CachedFile struct {
	Size       int64       `json:"size"`
	ModTime    int64       `json:"mod_time"`
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one string extracted from a source line, keyed by normalized text.
type Candidate struct {
	Priority SourcePriority `json:"priority"`
	Key      string         `json:"key"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
}

// IsInvalidated reports whether the cache was built under another config.
func (c *IndexCache) IsInvalidated(configHash string) bool {
	return c.ConfigHash != configHash
}

// Lookup returns cached candidates for f if its size and mtime still match.
func (c *IndexCache) Lookup(f SourceFile) ([]Candidate, bool) {
	if c == nil || c.Files == nil {
		return nil, false
	}
	cf, ok := c.Files[f.RelPath]
	if !ok || cf.Size != f.Size || cf.ModTime != f.ModTime {
		return nil, false
	}
	return cf.Candidates, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
