package application

import (
	"context"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/attribution"
	auditerrors "github.com/locaudit/locaudit/internal/pkg/errors"
	"github.com/locaudit/locaudit/internal/pkg/logger"
	"github.com/locaudit/locaudit/internal/pkg/metrics"
	"github.com/locaudit/locaudit/internal/pkg/worker"
)

// extractorVersion is part of the cache hash; bump it when extraction rules change.
const extractorVersion = "2"

// IndexStats describes one index build.
type IndexStats struct {
	Files     int                           `json:"files"`
	CacheHits int                           `json:"cacheHits"`
	Unread    int                           `json:"unread"`
	Entries   map[domain.SourcePriority]int `json:"entries"`
	Duration  time.Duration                 `json:"duration"`
}

// IndexService builds the static text index for a project.
type IndexService struct {
	scanner domain.SourceScanner
	reader  domain.SourceReader
	cache   domain.IndexCacheStore
}

// NewIndexService creates an IndexService. cache may be nil to disable reuse.
func NewIndexService(scanner domain.SourceScanner, reader domain.SourceReader, cache domain.IndexCacheStore) *IndexService {
	return &IndexService{scanner: scanner, reader: reader, cache: cache}
}

// Build scans projectPath and indexes every matching source file. Files that
// cannot be read are skipped. Candidates are merged in scan order so the
// resulting index is identical regardless of worker scheduling.
func (s *IndexService) Build(ctx context.Context, projectPath string, cfg domain.ProjectConfig) (*attribution.Index, *IndexStats, error) {
	start := time.Now()

	// 1. Scan filesystem
	root := cfg.Scan.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(projectPath, root)
	}
	scan, err := s.scanner.Scan(root, cfg.Scan.Extensions, cfg.Scan.ExcludePaths)
	if err != nil {
		return nil, nil, auditerrors.Wrap(err, auditerrors.CodeIndex, "scanning project").
			WithContext(auditerrors.CtxPath, root)
	}

	// 2. Load cache
	hash := scanHash(cfg.Scan)
	var cached *domain.IndexCache
	if s.cache != nil {
		c, err := s.cache.Load(projectPath)
		switch {
		case err != nil:
			logger.Debug("index cache unreadable", zap.Error(err))
		case c != nil && !c.IsInvalidated(hash):
			cached = c
		}
	}

	// 3. Extract candidates in parallel
	pool, err := worker.New("index", cfg.Scan.Workers)
	if err != nil {
		return nil, nil, auditerrors.Wrap(err, auditerrors.CodeInternal, "creating worker pool")
	}
	defer pool.Release(5 * time.Second)

	files := scan.Files
	perFile := make([][]domain.Candidate, len(files))
	readOK := make([]bool, len(files))
	var hits, unread atomic.Int64

	err = pool.Each(ctx, len(files), func(_ context.Context, i int) {
		f := files[i]
		if cands, ok := cached.Lookup(f); ok {
			perFile[i], readOK[i] = cands, true
			hits.Add(1)
			return
		}
		data, err := s.reader.ReadFile(f.Path)
		if err != nil {
			logger.Debug("skipping unreadable source file", zap.String("path", f.RelPath), zap.Error(err))
			unread.Add(1)
			return
		}
		perFile[i], readOK[i] = attribution.ExtractFile(data), true
	})
	if err != nil {
		return nil, nil, auditerrors.Wrap(err, auditerrors.CodeIndex, "extracting source text")
	}

	// 4. Merge in scan order
	ix := attribution.NewIndex()
	next := &domain.IndexCache{ProjectPath: projectPath, ConfigHash: hash, Files: make(map[string]*domain.CachedFile, len(files))}
	for i, f := range files {
		if !readOK[i] {
			continue
		}
		ix.AddFile(f.RelPath, perFile[i])
		next.Files[f.RelPath] = &domain.CachedFile{Size: f.Size, ModTime: f.ModTime, Candidates: perFile[i]}
	}

	// 5. Persist cache
	if s.cache != nil {
		if err := s.cache.Save(next); err != nil {
			logger.Warn("saving index cache", zap.Error(err))
		}
	}

	st := ix.Stats()
	stats := &IndexStats{
		Files:     st.Files,
		CacheHits: int(hits.Load()),
		Unread:    int(unread.Load()),
		Entries:   st.Entries,
		Duration:  time.Since(start),
	}

	metrics.IndexFiles.Set(float64(stats.Files))
	for p, n := range stats.Entries {
		metrics.IndexEntries.WithLabelValues(string(p)).Set(float64(n))
	}
	metrics.IndexCacheHitsTotal.Add(float64(stats.CacheHits))
	metrics.IndexBuildDuration.Observe(stats.Duration.Seconds())

	logger.Info("source index built",
		zap.Int("files", stats.Files),
		zap.Int("cache_hits", stats.CacheHits),
		zap.Int("unread", stats.Unread),
		zap.Duration("duration", stats.Duration),
	)
	return ix, stats, nil
}

// Invalidate drops the persisted index cache.
func (s *IndexService) Invalidate(projectPath string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(projectPath); err != nil {
		return fmt.Errorf("invalidating index cache: %w", err)
	}
	return nil
}

func scanHash(sc domain.ScanConfig) string {
	data := extractorVersion + "|" + strings.Join(sc.Extensions, ",") + "|" + strings.Join(sc.ExcludePaths, ",")
	h := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", h[:8])
}
