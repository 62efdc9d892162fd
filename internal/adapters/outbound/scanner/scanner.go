package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/locaudit/locaudit/internal/domain"
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

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan walks root and returns files with one of extensions, sorted by
// relative path. Exclude patterns are globs over slash-separated relative
// paths ("**/*.test.tsx", "legacy/**"); a bare name also matches any
// directory with that name.
func (s *FileScanner) Scan(root string, extensions, excludes []string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absPath)
	}

	globs, err := compile(excludes)
	if err != nil {
		return nil, err
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == absPath {
				return err
			}
			result.Skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || excluded(globs, relPath+"/", d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !exts[strings.ToLower(filepath.Ext(d.Name()))] || excluded(globs, relPath, "") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			result.Skipped++
			return nil
		}
		result.Files = append(result.Files, domain.SourceFile{
			Path:    path,
			RelPath: relPath,
			Size:    fi.Size(),
			ModTime: fi.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})
	return result, nil
}

type pattern struct {
	raw string
	g   glob.Glob
}

func compile(excludes []string) ([]pattern, error) {
	out := make([]pattern, 0, len(excludes))
	for _, p := range excludes {
		p = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(p)), "/")
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		out = append(out, pattern{raw: p, g: g})
	}
	return out, nil
}

func excluded(patterns []pattern, rel, dirName string) bool {
	for _, p := range patterns {
		if p.g.Match(rel) || p.g.Match(strings.TrimSuffix(rel, "/")) {
			return true
		}
		if dirName != "" && p.raw == dirName {
			return true
		}
	}
	return false
}
