package locale_test

import (
	"testing"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/stretchr/testify/assert"
)

func TestIsRTL(t *testing.T) {
	for _, l := range []string{"ar", "AR", "ar-EG", "he", "fa-IR", "ur", "yi", "ps", "sd", "ug-CN"} {
		assert.True(t, locale.IsRTL(l), l)
	}
	for _, l := range []string{"en", "fr-CA", "de", "", "arn"} {
		assert.False(t, locale.IsRTL(l), l)
	}
}

func TestFlipInlineStyle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"margin-left: 8px", "margin-right: 8px"},
		{"padding-right:4px;color:red", "padding-left:4px;color:red"},
		{"text-align: left", "text-align: right"},
		{"text-align: Right !important", "text-align: left !important"},
		{"margin-left: 1px; margin-right: 2px", "margin-right: 1px; margin-left: 2px"},
		{"color: red; display: flex", "color: red; display: flex"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locale.FlipInlineStyle(tt.in), "style %q", tt.in)
	}
}

func TestFlipInlineStyle_Symmetric(t *testing.T) {
	in := "margin-left: 12px; padding-right: 3px; text-align: left"
	assert.Equal(t, in, locale.FlipInlineStyle(locale.FlipInlineStyle(in)))
}

func TestRTLStylesheet(t *testing.T) {
	css := locale.RTLStylesheet()
	assert.Contains(t, css, "text-align: right")
	assert.Contains(t, css, "row-reverse")
	assert.Contains(t, css, "dashed")
	assert.Contains(t, css, "["+locale.RTLLintAttribute+"]")
	assert.NotContains(t, css, `[style*="margin-left"]`)
}

func TestIsOneSided(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{"margin-left: 8px", true},
		{"padding-left:4px; color: red", true},
		{"position: absolute; left: 0", true},
		{"margin-left: 8px; margin-right: 8px", false},
		{"left: 0; right: 0", false},
		{"margin-right: 8px", false},
		{"text-align: left", false},
		{"border-left: 1px solid", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, locale.IsOneSided(tt.style), "style %q", tt.style)
	}
}

func TestIsOneSided_CheckedBeforeFlip(t *testing.T) {
	for _, style := range []string{"margin-left: 8px", "padding-left: 4px"} {
		assert.True(t, locale.IsOneSided(style), style)
		assert.False(t, locale.IsOneSided(locale.FlipInlineStyle(style)), "flipped %s no longer reads as left-sided", style)
	}
}

func TestPlanFor(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		opts   locale.PlanOptions
		want   domain.TransformKind
		factor float64
	}{
		{"source locale", "en", locale.PlanOptions{SourceLocale: "en"}, domain.TransformNone, 0},
		{"source locale case", "EN", locale.PlanOptions{SourceLocale: "en"}, domain.TransformNone, 0},
		{"server rendered with file", "de", locale.PlanOptions{SourceLocale: "en", ServerRendered: true, HasTranslations: true}, domain.TransformNone, 0},
		{"server rendered without file", "de", locale.PlanOptions{SourceLocale: "en", ServerRendered: true, Factor: 0.3}, domain.TransformPseudo, 0.3},
		{"rtl", "ar-EG", locale.PlanOptions{SourceLocale: "en"}, domain.TransformRTL, 0},
		{"pseudo default factor", "fr", locale.PlanOptions{SourceLocale: "en"}, domain.TransformPseudo, domain.DefaultPseudoFactor},
		{"pseudo preset", "de", locale.PlanOptions{SourceLocale: "en", Factor: 0.3}, domain.TransformPseudo, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := locale.PlanFor(tt.locale, tt.opts)
			assert.Equal(t, tt.want, p.Kind)
			assert.InDelta(t, tt.factor, p.Factor, 0.0001)
			assert.NotEmpty(t, p.Reason)
		})
	}
}
