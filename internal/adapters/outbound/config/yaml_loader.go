package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/locaudit/locaudit/internal/domain"
)

// FileName is the project configuration file.
const FileName = ".locaudit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .locaudit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .locaudit.yaml from projectPath. Values present in the file
// override DefaultConfig; a missing file yields the defaults. Unknown keys
// are rejected.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}
	return Parse(data)
}

// Parse decodes configuration over the defaults and validates the result.
func Parse(data []byte) (domain.ProjectConfig, error) {
	cfg := domain.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Template returns a commented configuration file for url.
func Template(url string) string {
	if url == "" {
		url = "http://localhost:3000"
	}
	d := domain.DefaultConfig()
	return fmt.Sprintf(`# locaudit configuration

# Page to audit. {url} and {locale} are expanded in url_template.
url: %s
url_template: "{url}"

source_locale: %s
locales: [de, ar]
locales_dir: %s

# Locales the app renders itself from locales/<locale>.json. Others are
# pseudo-localized (or mirrored for right-to-left scripts).
# server_rendered: [de]

pseudo:
  default_factor: %.2f
  factors:
    de: %.2f

detect:
  marker_attribute: %s
  frameworks: true
  # exclude_tags: [script, style, noscript, svg, path]

scan:
  root: .
  # exclude_paths:
  #   - "**/*.stories.tsx"
  #   - legacy/**

timing:
  navigation_timeout: %s
  settle_delay: %s

report:
  dedupe: true
  fail_on: %s

# provider:
#   command: npx lingo.dev@latest run
#   api_key_env: LINGODOTDEV_API_KEY
#   timeout: 10m
`, url, d.SourceLocale, d.LocalesDir, d.Pseudo.DefaultFactor, d.Pseudo.Factors["de"],
		d.Detect.MarkerAttribute, d.Timing.NavigationTimeout, d.Timing.SettleDelay, d.Report.FailOn)
}
