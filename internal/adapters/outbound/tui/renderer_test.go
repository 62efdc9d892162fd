package tui_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/domain"
)

func sampleOutcomes() []domain.LocaleOutcome {
	return []domain.LocaleOutcome{
		{Locale: "en", Result: &domain.AuditResult{Locale: "en", Transform: domain.TransformNone, Issues: []domain.OverflowIssue{}}},
		{Locale: "de", Result: &domain.AuditResult{
			Locale:     "de",
			Transform:  domain.TransformPseudo,
			IssueCount: 2,
			Issues: []domain.OverflowIssue{
				{
					Selector: "main > p", TextContent: "Kurz", Severity: domain.SeverityInfo,
					OverflowDirection: domain.DirectionVertical, OverflowY: 3,
				},
				{
					Selector: "button.cta", TextContent: "Jetzt loslegen", EnglishText: "Get Started",
					Severity: domain.SeverityError, OverflowDirection: domain.DirectionHorizontal, OverflowX: 42,
					SourceFile: "src/components/Hero.tsx", SourceLine: 8, SourceColumn: 35,
					Attribution: domain.AttributionI18n, TranslationKey: "cta",
					Suggestion: "Allow the button to grow",
				},
			},
		}},
		{Locale: "ja", Failed: true, Error: "navigation timed out"},
	}
}

func TestRenderReport_Header(t *testing.T) {
	output := tui.RenderReport("http://app.test", sampleOutcomes())
	assert.Contains(t, output, "locaudit")
	assert.Contains(t, output, "http://app.test")
	assert.Contains(t, output, "2 issues across 3 locales")
}

func TestRenderReport_CleanAndFailedLocales(t *testing.T) {
	output := tui.RenderReport("http://app.test", sampleOutcomes())
	assert.Contains(t, output, "no overflow")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "navigation timed out")
}

func TestRenderReport_IssueDetails(t *testing.T) {
	output := tui.RenderReport("http://app.test", sampleOutcomes())
	assert.Contains(t, output, "button.cta")
	assert.Contains(t, output, "horizontal +42px")
	assert.Contains(t, output, `(en: "Get Started")`)
	assert.Contains(t, output, "src/components/Hero.tsx:8:35")
	assert.Contains(t, output, "key cta")
	assert.Contains(t, output, "Allow the button to grow")
}

func TestRenderReport_ErrorsBeforeInfo(t *testing.T) {
	output := tui.RenderReport("http://app.test", sampleOutcomes())
	assert.Less(t, strings.Index(output, "button.cta"), strings.Index(output, "main > p"))
}

func TestRenderReport_SeverityCounts(t *testing.T) {
	output := tui.RenderReport("http://app.test", sampleOutcomes())
	assert.Contains(t, output, "1 errors")
	assert.Contains(t, output, "1 info")
	assert.NotContains(t, output, "warnings")
}

func TestRenderReport_TransformError(t *testing.T) {
	out := []domain.LocaleOutcome{{Locale: "ar", Result: &domain.AuditResult{
		Transform: domain.TransformNone, TransformError: "apply_rtl: boom",
	}}}
	output := tui.RenderReport("http://app.test", out)
	assert.Contains(t, output, "transform skipped")
	assert.Contains(t, output, "apply_rtl: boom")
}

func TestRenderReport_ComponentWithoutFile(t *testing.T) {
	out := []domain.LocaleOutcome{{Locale: "de", Result: &domain.AuditResult{
		IssueCount: 1,
		Issues: []domain.OverflowIssue{{
			Selector: "nav", TextContent: "x", Severity: domain.SeverityWarning, ComponentName: "NavBar",
		}},
	}}}
	assert.Contains(t, tui.RenderReport("u", out), "<NavBar>")
}

func TestRenderMatrix(t *testing.T) {
	output := tui.RenderMatrix(sampleOutcomes())
	assert.Contains(t, output, "Locale")
	assert.Contains(t, output, "pseudo")
	assert.Contains(t, output, "█")
	assert.Contains(t, output, "✘ failed")
	assert.Less(t, strings.Index(output, "✘ failed"), strings.Index(output, "pseudo"), "failed locales sort first")
}

func TestRenderMatrix_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderMatrix(nil), "No locales audited")
}

func TestRenderHistory(t *testing.T) {
	runs := []domain.AuditRun{
		{Timestamp: "2026-10-01T10:00:00Z", CommitHash: "abcdef1234", Locales: []domain.LocaleSummary{{Locale: "de", Issues: 5}}},
		{Timestamp: "2026-10-02T10:00:00Z", Locales: []domain.LocaleSummary{{Locale: "de", Issues: 2}, {Locale: "ar", Failed: true}}},
	}
	output := tui.RenderHistory(runs)
	assert.Contains(t, output, "Audit History")
	assert.Contains(t, output, "2026-10-01")
	assert.Contains(t, output, "abcdef1")
	assert.NotContains(t, output, "abcdef12")
	assert.Contains(t, output, "↓3")
	assert.Contains(t, output, "1 failed")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No audit history found")
}

func TestRenderIndexSummary(t *testing.T) {
	output := tui.RenderIndexSummary(tui.IndexSummary{
		Root:      "/app/src",
		Files:     3,
		CacheHits: 1,
		Unread:    2,
		Entries:   map[domain.SourcePriority]int{domain.PriorityI18n: 4, domain.PriorityJSX: 2},
		Duration:  12 * time.Millisecond,
	})
	assert.Contains(t, output, "3 files")
	assert.Contains(t, output, "1 cached")
	assert.Contains(t, output, "4 entries")
	assert.Contains(t, output, "0 entries")
	assert.Contains(t, output, "2 files could not be read")
}

func TestRenderLookup(t *testing.T) {
	output := tui.RenderLookup("Get Started", []domain.SourceLocation{
		{File: "src/Hero.tsx", Line: 8, Column: 35, Priority: domain.PriorityI18n},
		{File: "src/App.tsx", Line: 2, Priority: domain.PriorityString},
	})
	assert.Contains(t, output, "src/Hero.tsx:8:35")
	assert.Contains(t, output, "src/App.tsx:2")
	assert.NotContains(t, output, "src/App.tsx:2:")

	assert.Contains(t, tui.RenderLookup("nope", nil), "no source location found")
}

func TestRenderReverse(t *testing.T) {
	output := tui.RenderReverse("Jetzt loslegen", &domain.TranslationEntry{
		EnglishText: "Get Started", TranslatedText: "Jetzt loslegen", Key: "cta",
	})
	assert.Contains(t, output, "cta")
	assert.Contains(t, output, `"Get Started"`)

	assert.Contains(t, tui.RenderReverse("x", nil), "no translation matches")
}

func TestRenderTranslate(t *testing.T) {
	ok := tui.RenderTranslate(&domain.ProviderResult{Success: true, Locales: []string{"de", "fr"}})
	assert.Contains(t, ok, "translations generated")
	assert.Contains(t, ok, "de, fr")

	failed := tui.RenderTranslate(&domain.ProviderResult{ExitCode: 2, Output: "quota exceeded\n"})
	assert.Contains(t, failed, "exited with code 2")
	assert.Contains(t, failed, "quota exceeded")
}
