package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/locaudit/locaudit/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// IndexSummary is what the index command reports after a build.
type IndexSummary struct {
	Root      string
	Files     int
	CacheHits int
	Unread    int
	Entries   map[domain.SourcePriority]int
	Duration  time.Duration
}

// RenderIndexSummary renders a finished index build.
func RenderIndexSummary(s IndexSummary) string {
	var b strings.Builder

	title := titleStyle.Render("Source index") + "  " + dimStyle.Render(s.Root)
	stats := dimStyle.Render(fmt.Sprintf("%d files  ·  %d cached  ·  %s",
		s.Files, s.CacheHits, s.Duration.Round(time.Millisecond)))
	b.WriteString(boxStyle.Render(title + "\n" + stats))
	b.WriteString("\n\n")

	for _, p := range domain.Priorities {
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render(padRight(string(p), 8)),
			fmt.Sprintf("%d entries", s.Entries[p]))
	}
	if s.Unread > 0 {
		fmt.Fprintf(&b, "\n  %s\n", warnTagStyle.Render(fmt.Sprintf("%d files could not be read", s.Unread)))
	}
	return b.String()
}

// RenderLookup renders the index hits for query, best tier first.
func RenderLookup(query string, hits []domain.SourceLocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n", titleStyle.Render("Lookup"), dimStyle.Render(fmt.Sprintf("%q", query)))

	if len(hits) == 0 {
		b.WriteString("    " + dimStyle.Render("no source location found") + "\n")
		b.WriteString("  " + hintStyle.Render("Run `locaudit index build` after changing sources.") + "\n")
		return b.String()
	}
	for i, h := range hits {
		marker := faintStyle.Render("○")
		if i == 0 {
			marker = passStyle.Render("●")
		}
		fmt.Fprintf(&b, "    %s %s  %s\n", marker, padRight(string(h.Priority), 7), fileStyle.Render(locationString(h)))
	}
	return b.String()
}

// RenderReverse renders a reverse-mapped translation. entry may be nil.
func RenderReverse(text string, entry *domain.TranslationEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n", titleStyle.Render("Reverse"), dimStyle.Render(fmt.Sprintf("%q", text)))
	if entry == nil {
		b.WriteString("    " + dimStyle.Render("no translation matches") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(padRight("key", 8)), entry.Key)
	fmt.Fprintf(&b, "    %s %q\n", dimStyle.Render(padRight("english", 8)), entry.EnglishText)
	if entry.TranslatedText != "" {
		fmt.Fprintf(&b, "    %s %q\n", dimStyle.Render(padRight("match", 8)), entry.TranslatedText)
	}
	return b.String()
}

// RenderTranslate renders a provider run.
func RenderTranslate(res *domain.ProviderResult) string {
	var b strings.Builder
	status := passStyle.Render("✔ translations generated")
	if !res.Success {
		status = failStyle.Render(fmt.Sprintf("✘ provider exited with code %d", res.ExitCode))
	}
	fmt.Fprintf(&b, "\n  %s  %s\n", status, dimStyle.Render(res.Duration.Round(time.Millisecond).String()))
	if len(res.Locales) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("locales:"), strings.Join(res.Locales, ", "))
	}
	if !res.Success && res.Output != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(res.Output, "\n"), "\n") {
			b.WriteString("    " + faintStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func locationString(l domain.SourceLocation) string {
	s := fmt.Sprintf("%s:%d", l.File, l.Line)
	if l.Column > 0 {
		s += fmt.Sprintf(":%d", l.Column)
	}
	return s
}
