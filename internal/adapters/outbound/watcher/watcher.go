package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/pkg/logger"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".next":        true,
	"dist":         true,
	"build":        true,
	".git":         true,
	"coverage":     true,
	".locaudit":    true,
}

// FSWatcher implements domain.ChangeWatcher with fsnotify. Events are
// collected until the tree has been quiet for the debounce window, then
// delivered as one batch of slash-separated relative paths.
type FSWatcher struct {
	debounce time.Duration
	exts     map[string]bool
	ignore   []glob.Glob
}

// New creates a watcher. An empty extensions list accepts every file;
// ignore holds globs over relative paths.
func New(debounce time.Duration, extensions, ignore []string) (*FSWatcher, error) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	compiled := make([]glob.Glob, 0, len(ignore))
	for _, p := range ignore {
		p = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(p)), "/")
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid watch ignore pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}

	return &FSWatcher{debounce: debounce, exts: exts, ignore: compiled}, nil
}

// Watch starts watching root recursively. The returned channel is closed
// once ctx is cancelled.
func (w *FSWatcher) Watch(ctx context.Context, root string) (<-chan []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.addRecursive(fsw, absRoot, absRoot); err != nil {
		fsw.Close()
		return nil, err
	}

	out := make(chan []string)
	go w.run(ctx, fsw, absRoot, out)
	return out, nil
}

func (w *FSWatcher) run(ctx context.Context, fsw *fsnotify.Watcher, root string, out chan<- []string) {
	defer close(out)
	defer fsw.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, root, event.Name); err != nil {
						logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			rel, ok := w.accept(root, event.Name)
			if !ok {
				continue
			}
			pending[rel] = true
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)

			logger.Debug("source change batch", zap.Int("paths", len(batch)))
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *FSWatcher) addRecursive(fsw *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(root, path, d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func (w *FSWatcher) skipDir(root, path, name string) bool {
	if skipDirs[name] {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return w.ignored(filepath.ToSlash(rel))
}

// accept filters a file event and returns its relative path.
func (w *FSWatcher) accept(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if skipDirs[part] {
			return "", false
		}
	}
	if len(w.exts) > 0 && !w.exts[strings.ToLower(filepath.Ext(rel))] {
		return "", false
	}
	if w.ignored(rel) {
		return "", false
	}
	return rel, true
}

func (w *FSWatcher) ignored(rel string) bool {
	for _, g := range w.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
