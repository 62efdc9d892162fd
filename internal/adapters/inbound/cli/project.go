package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/adapters/outbound/browser"
	"github.com/locaudit/locaudit/internal/adapters/outbound/cache"
	"github.com/locaudit/locaudit/internal/adapters/outbound/config"
	"github.com/locaudit/locaudit/internal/adapters/outbound/localefs"
	"github.com/locaudit/locaudit/internal/adapters/outbound/provider"
	"github.com/locaudit/locaudit/internal/adapters/outbound/scanner"
	"github.com/locaudit/locaudit/internal/adapters/outbound/sourcefile"
	"github.com/locaudit/locaudit/internal/application"
	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/attribution"
	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// project is a loaded project directory and its configuration.
type project struct {
	path string
	cfg  domain.ProjectConfig
}

func loadProject(path string) (*project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.New().Load(absPath)
	if err != nil {
		return nil, err
	}
	return &project{path: absPath, cfg: cfg}, nil
}

func newIndexService() *application.IndexService {
	return application.NewIndexService(scanner.New(), sourcefile.New(0), cache.New())
}

func newTranslateService() *application.TranslateService {
	return application.NewTranslateService(provider.New(), localefs.New())
}

func newBrowser(s *settings, cfg domain.ProjectConfig) *browser.Chrome {
	return browser.New(browser.Options{
		Width:     cfg.Viewport.Width,
		Height:    cfg.Viewport.Height,
		Headless:  s.Headless,
		ExecPath:  s.ChromePath,
		NoSandbox: s.NoSandbox,
	})
}

// index builds the static source index. Attribution is best effort, so a
// failed build is logged and audits continue without it.
func (p *project) index(ctx context.Context) *attribution.Index {
	ix, stats, err := newIndexService().Build(ctx, p.path, p.cfg)
	if err != nil {
		logger.Warn("source index unavailable", zap.Error(err))
		return nil
	}
	logger.Debug("source index ready", zap.Int("files", stats.Files), zap.Int("cache_hits", stats.CacheHits))
	return ix
}

// mapper loads the project's locale files. Missing files give an empty mapper.
func (p *project) mapper() *translation.ReverseMapper {
	set, err := newTranslateService().LoadLocales(p.path, p.cfg)
	if err != nil {
		logger.Debug("locale files unavailable", zap.Error(err))
		return translation.NewReverseMapper(nil, nil)
	}
	return translation.FromLocaleSet(set)
}

func pathArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "."
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
