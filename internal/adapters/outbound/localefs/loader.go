package localefs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// Loader implements domain.LocaleLoader over a directory of <locale>.json files.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads every locale file in dir. The sourceLocale file becomes
// LocaleSet.English; unreadable or malformed files are skipped. A missing
// directory yields an empty set.
func (l *Loader) Load(dir, sourceLocale string) (*domain.LocaleSet, error) {
	set := &domain.LocaleSet{English: map[string]string{}, Others: map[string]map[string]string{}}

	names, err := l.List(dir)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("skipping unreadable locale file", zap.String("path", path), zap.Error(err))
			continue
		}
		strs, err := translation.Parse(data)
		if err != nil {
			logger.Debug("skipping malformed locale file", zap.String("path", path), zap.Error(err))
			continue
		}
		if strings.EqualFold(name, sourceLocale) {
			set.English = strs
			continue
		}
		set.Others[name] = strs
	}
	return set, nil
}

// List returns the locale names of every .json file in dir, sorted.
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}
