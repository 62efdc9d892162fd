package application

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/domain"
	auditerrors "github.com/locaudit/locaudit/internal/pkg/errors"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// TranslateService runs the configured translation provider and reports the
// locale files it produced.
type TranslateService struct {
	provider domain.TranslationProvider
	locales  domain.LocaleLoader
	getenv   func(string) (string, bool)
}

// NewTranslateService creates a TranslateService reading API keys from the
// process environment.
func NewTranslateService(provider domain.TranslationProvider, locales domain.LocaleLoader) *TranslateService {
	return &TranslateService{provider: provider, locales: locales, getenv: os.LookupEnv}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *TranslateService) WithEnv(getenv func(string) (string, bool)) *TranslateService {
	s.getenv = getenv
	return s
}

// Run executes the provider in projectPath. A provider that exits non-zero
// yields a result with Success false and no error; errors are reserved for
// configuration problems and failures to start the command.
func (s *TranslateService) Run(ctx context.Context, projectPath string, cfg domain.ProjectConfig) (*domain.ProviderResult, error) {
	// 0. Validate provider settings
	if cfg.Provider.Command == "" {
		return nil, auditerrors.New(auditerrors.CodeConfig, "no translation provider command configured (provider.command)")
	}
	req := domain.ProviderRequest{
		ProjectPath: projectPath,
		Command:     cfg.Provider.Command,
		APIKeyEnv:   cfg.Provider.APIKeyEnv,
		Locales:     cfg.Locales,
		Timeout:     cfg.ProviderTimeout(),
	}
	if req.APIKeyEnv != "" {
		key, ok := s.getenv(req.APIKeyEnv)
		if !ok || key == "" {
			return nil, auditerrors.New(auditerrors.CodeProvider, "API key variable "+req.APIKeyEnv+" is not set")
		}
		req.APIKey = key
	}

	// 1. Run provider
	logger.Info("running translation provider", zap.String("command", req.Command), zap.Strings("locales", req.Locales))
	res, err := s.provider.Run(ctx, req)
	if err != nil {
		return nil, auditerrors.Wrap(err, auditerrors.CodeProvider, "running translation provider")
	}

	// 2. Enumerate generated locales
	locs, err := s.Locales(projectPath, cfg)
	if err != nil {
		logger.Debug("listing locales after provider run", zap.Error(err))
	}
	res.Locales = locs

	if !res.Success {
		logger.Warn("translation provider failed", zap.Int("exit_code", res.ExitCode))
	}
	return res, nil
}

// Locales lists the locale files present in the project's locale directory.
func (s *TranslateService) Locales(projectPath string, cfg domain.ProjectConfig) ([]string, error) {
	return s.locales.List(localesDir(projectPath, cfg))
}

// LoadLocales reads every locale file. Missing or malformed files are absent
// from the set rather than errors.
func (s *TranslateService) LoadLocales(projectPath string, cfg domain.ProjectConfig) (*domain.LocaleSet, error) {
	return s.locales.Load(localesDir(projectPath, cfg), cfg.SourceLocale)
}

func localesDir(projectPath string, cfg domain.ProjectConfig) string {
	dir := cfg.LocalesDir
	if dir == "" {
		dir = "locales"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(projectPath, dir)
}
