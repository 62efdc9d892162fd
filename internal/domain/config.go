package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProjectConfig holds project-level configuration loaded from .locaudit.yaml.
type ProjectConfig struct {
	URL            string         `yaml:"url"             json:"url,omitempty"`
	URLTemplate    string         `yaml:"url_template"    json:"url_template"`
	SourceLocale   string         `yaml:"source_locale"   json:"source_locale"`
	Locales        []string       `yaml:"locales"         json:"locales"`
	LocalesDir     string         `yaml:"locales_dir"     json:"locales_dir"`
	ServerRendered []string       `yaml:"server_rendered" json:"server_rendered,omitempty"`
	Pseudo         PseudoConfig   `yaml:"pseudo"          json:"pseudo"`
	Detect         DetectConfig   `yaml:"detect"          json:"detect"`
	Scan           ScanConfig     `yaml:"scan"            json:"scan"`
	Timing         TimingConfig   `yaml:"timing"          json:"timing"`
	Viewport       ViewportConfig `yaml:"viewport"        json:"viewport"`
	Report         ReportConfig   `yaml:"report"          json:"report"`
	Provider       ProviderConfig `yaml:"provider"        json:"provider"`
	Watch          WatchConfig    `yaml:"watch"           json:"watch"`
}

// PseudoConfig tunes the pseudo-locale expansion factor per locale.
type PseudoConfig struct {
	DefaultFactor float64            `yaml:"default_factor" json:"default_factor"`
	Factors       map[string]float64 `yaml:"factors"        json:"factors,omitempty"`
}

// DetectConfig tunes overflow detection and runtime attribution.
type DetectConfig struct {
	ExcludeTags       []string `yaml:"exclude_tags"       json:"exclude_tags"`
	MarkerAttribute   string   `yaml:"marker_attribute"   json:"marker_attribute"`
	Frameworks        bool     `yaml:"frameworks"         json:"frameworks"`
	ComponentDenylist []string `yaml:"component_denylist" json:"component_denylist,omitempty"`
}

// ScanConfig controls the static source index.
type ScanConfig struct {
	Root         string   `yaml:"root"          json:"root"`
	Extensions   []string `yaml:"extensions"    json:"extensions"`
	ExcludePaths []string `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	Workers      int      `yaml:"workers"       json:"workers,omitempty"`
}

// TimingConfig holds durations as strings ("30s", "500ms").
type TimingConfig struct {
	NavigationTimeout string `yaml:"navigation_timeout" json:"navigation_timeout"`
	SettleDelay       string `yaml:"settle_delay"       json:"settle_delay"`
}

// ViewportConfig is the emulated browser window size.
type ViewportConfig struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// ReportConfig controls aggregation and the CI gate.
type ReportConfig struct {
	Dedupe bool   `yaml:"dedupe"  json:"dedupe"`
	FailOn string `yaml:"fail_on" json:"fail_on"`
}

// ProviderConfig describes the external translation provider command.
type ProviderConfig struct {
	Command   string `yaml:"command"     json:"command,omitempty"`
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env,omitempty"`
	Timeout   string `yaml:"timeout"     json:"timeout"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce    string   `yaml:"debounce"     json:"debounce"`
	MinInterval string   `yaml:"min_interval" json:"min_interval"`
	Ignore      []string `yaml:"ignore"       json:"ignore,omitempty"`
}

const (
	DefaultPseudoFactor = 0.35
	GermanPseudoFactor  = 0.30
)

// DefaultExcludeTags are never visited by the detector, nor their descendants.
var DefaultExcludeTags = []string{"script", "style", "noscript", "svg", "path"}

// DefaultExtensions are the source extensions indexed for attribution.
var DefaultExtensions = []string{".tsx", ".jsx", ".ts", ".js", ".vue", ".svelte", ".html"}

// DefaultComponentDenylist names framework plumbing components whose names
// are not worth reporting. Entries also match as a trailing camel-case word.
var DefaultComponentDenylist = []string{
	"Provider", "Consumer", "Context", "Router", "Routes", "Route",
	"Suspense", "Fragment", "StrictMode", "Boundary", "Outlet",
	"Transition", "Portal", "ForwardRef", "Memo", "Anonymous",
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		URLTemplate:  "{url}",
		SourceLocale: "en",
		Locales:      []string{"de", "ar"},
		LocalesDir:   "locales",
		Pseudo: PseudoConfig{
			DefaultFactor: DefaultPseudoFactor,
			Factors:       map[string]float64{"de": GermanPseudoFactor},
		},
		Detect: DetectConfig{
			ExcludeTags:       append([]string(nil), DefaultExcludeTags...),
			MarkerAttribute:   "data-source-loc",
			Frameworks:        true,
			ComponentDenylist: append([]string(nil), DefaultComponentDenylist...),
		},
		Scan: ScanConfig{
			Root:       ".",
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Timing: TimingConfig{
			NavigationTimeout: "30s",
			SettleDelay:       "500ms",
		},
		Viewport: ViewportConfig{Width: 1280, Height: 800},
		Report:   ReportConfig{Dedupe: true, FailOn: SeverityError},
		Provider: ProviderConfig{Timeout: "10m"},
		Watch:    WatchConfig{Debounce: "500ms", MinInterval: "5s"},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. url_template must reference the base url
	if c.URLTemplate != "" && !strings.Contains(c.URLTemplate, "{url}") {
		return fmt.Errorf("url_template %q must contain {url}", c.URLTemplate)
	}

	// 2. locales must be non-empty identifiers
	for i, l := range c.Locales {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("locales[%d] must not be empty", i)
		}
	}
	if strings.TrimSpace(c.SourceLocale) == "" {
		return fmt.Errorf("source_locale must not be empty")
	}

	// 3. expansion factors in (0, 3]
	if err := validFactor("pseudo.default_factor", c.Pseudo.DefaultFactor); err != nil {
		return err
	}
	for loc, f := range c.Pseudo.Factors {
		if err := validFactor(fmt.Sprintf("pseudo.factors[%q]", loc), f); err != nil {
			return err
		}
	}

	// 4. durations must parse and be positive
	durations := map[string]string{
		"timing.navigation_timeout": c.Timing.NavigationTimeout,
		"timing.settle_delay":       c.Timing.SettleDelay,
		"provider.timeout":          c.Provider.Timeout,
		"watch.debounce":            c.Watch.Debounce,
		"watch.min_interval":        c.Watch.MinInterval,
	}
	for name, v := range durations {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q", name, v)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", name, v)
		}
	}

	// 5. fail_on must be a severity
	if c.Report.FailOn != "" && !IsValidSeverity(c.Report.FailOn) {
		return fmt.Errorf("unknown report.fail_on %q (valid: error, warning, info)", c.Report.FailOn)
	}

	// 6. extensions start with a dot
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan.extensions entry %q must start with '.'", ext)
		}
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0 (got %d)", c.Scan.Workers)
	}

	// 7. viewport
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport must not be negative (got %dx%d)", c.Viewport.Width, c.Viewport.Height)
	}

	return nil
}

func validFactor(name string, f float64) error {
	if f <= 0 || f > 3 {
		return fmt.Errorf("%s must be in (0, 3] (got %.2f)", name, f)
	}
	return nil
}

// FactorFor returns the expansion factor for locale, trying the exact tag,
// then its primary subtag, then the default.
func (c ProjectConfig) FactorFor(locale string) float64 {
	if f, ok := c.Pseudo.Factors[locale]; ok {
		return f
	}
	primary, _, _ := strings.Cut(strings.ToLower(locale), "-")
	if f, ok := c.Pseudo.Factors[primary]; ok {
		return f
	}
	if c.Pseudo.DefaultFactor > 0 {
		return c.Pseudo.DefaultFactor
	}
	return DefaultPseudoFactor
}

// IsServerRendered reports whether the app renders locale itself.
func (c ProjectConfig) IsServerRendered(locale string) bool {
	for _, l := range c.ServerRendered {
		if strings.EqualFold(l, locale) {
			return true
		}
	}
	return false
}

// NavigationTimeout returns the parsed navigation timeout, defaulting to 30s.
func (c ProjectConfig) NavigationTimeout() time.Duration {
	return parseDurationOr(c.Timing.NavigationTimeout, 30*time.Second)
}

// SettleDelay returns the parsed post-transform settle delay.
func (c ProjectConfig) SettleDelay() time.Duration {
	return parseDurationOr(c.Timing.SettleDelay, 500*time.Millisecond)
}

// ProviderTimeout returns the parsed provider timeout.
func (c ProjectConfig) ProviderTimeout() time.Duration {
	return parseDurationOr(c.Provider.Timeout, 10*time.Minute)
}

// WatchDebounce returns the parsed watch debounce window.
func (c ProjectConfig) WatchDebounce() time.Duration {
	return parseDurationOr(c.Watch.Debounce, 500*time.Millisecond)
}

// WatchMinInterval returns the minimum time between watch-mode audits.
func (c ProjectConfig) WatchMinInterval() time.Duration {
	return parseDurationOr(c.Watch.MinInterval, 5*time.Second)
}

// LocaleURL expands the url template for locale.
func (c ProjectConfig) LocaleURL(base, locale string) string {
	tmpl := c.URLTemplate
	if tmpl == "" {
		tmpl = "{url}"
	}
	return strings.NewReplacer("{url}", base, "{locale}", locale).Replace(tmpl)
}

func parseDurationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
