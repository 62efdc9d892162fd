package domain

import (
	"context"
	"time"
)

// Browser opens pages in a single reusable browser context.
type Browser interface {
	Open(ctx context.Context) (Page, error)
	Close() error
}

// Page is the narrow automation surface the auditor depends on.
type Page interface {
	// Navigate loads url and returns once the document is ready or timeout elapses.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// Evaluate runs script in the page with args JSON-encoded, decoding the
	// result into out. out may be nil.
	Evaluate(ctx context.Context, script PageScript, args any, out any) error
	// Wait blocks for a fixed delay.
	Wait(ctx context.Context, d time.Duration) error
	Close() error
}

// OriginProvider recovers a component origin from a snapshot element.
type OriginProvider interface {
	OriginOf(n *Node) (*ComponentOrigin, bool)
}

// SourceScanner lists files with one of extensions under root, skipping
// dependency and build directories and paths matching excludes globs.
type SourceScanner interface {
	Scan(root string, extensions, excludes []string) (*ScanResult, error)
}

// ScanResult holds the files found by a scan, in lexicographic order.
type ScanResult struct {
	RootPath string       `json:"root_path"`
	Files    []SourceFile `json:"files"`
	Skipped  int          `json:"skipped"`
}

// SourceFile is one scanned file. RelPath uses forward slashes.
type SourceFile struct {
	Path    string `json:"path"`
	RelPath string `json:"rel_path"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
}

// SourceReader reads a scanned file's contents.
type SourceReader interface {
	ReadFile(path string) ([]byte, error)
}

// LocaleSet is the translation data found on disk. Malformed files are
// absent, never errors.
type LocaleSet struct {
	English map[string]string            `json:"english"`
	Others  map[string]map[string]string `json:"others"`
}

// Locales returns every loaded non-English locale, sorted.
func (s *LocaleSet) Locales() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.Others)
}

// LocaleLoader reads locale files from a directory.
type LocaleLoader interface {
	Load(dir, sourceLocale string) (*LocaleSet, error)
	List(dir string) ([]string, error)
}

// ProviderRequest describes a translation provider run.
type ProviderRequest struct {
	ProjectPath string
	Command     string
	APIKeyEnv   string
	APIKey      string
	Locales     []string
	Timeout     time.Duration
}

// ProviderResult reports a finished provider run.
type ProviderResult struct {
	Success  bool          `json:"success"`
	ExitCode int           `json:"exit_code"`
	Output   string        `json:"output,omitempty"`
	Duration time.Duration `json:"duration"`
	Locales  []string      `json:"locales"`
}

// TranslationProvider generates locale files for a project.
type TranslationProvider interface {
	Run(ctx context.Context, req ProviderRequest) (*ProviderResult, error)
}

// ConfigLoader loads project configuration from the project directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// IndexCacheStore persists per-file index candidates between runs.
type IndexCacheStore interface {
	Load(projectPath string) (*IndexCache, error)
	Save(cache *IndexCache) error
	Invalidate(projectPath string) error
}

// AuditHistory persists audit runs.
type AuditHistory interface {
	Save(projectPath string, run AuditRun) error
	Load(projectPath string) ([]AuditRun, error)
}

// GitInfo exposes repository metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ChangeWatcher reports debounced batches of changed paths under root until
// ctx is cancelled, then closes the channel.
type ChangeWatcher interface {
	Watch(ctx context.Context, root string) (<-chan []string, error)
}
