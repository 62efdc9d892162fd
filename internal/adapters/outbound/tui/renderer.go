package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/locaudit/locaudit/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	localeStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats an audit across locales for terminal output.
func RenderReport(url string, outcomes []domain.LocaleOutcome) string {
	var b strings.Builder

	// ── Header ──
	total, failed := 0, 0
	for _, o := range outcomes {
		if o.Failed {
			failed++
			continue
		}
		if o.Result != nil {
			total += o.Result.IssueCount
		}
	}
	title := headerStyle.Render("locaudit")
	subtitle := dimStyle.Render(url)
	summary := fmt.Sprintf("%d issues across %d locales", total, len(outcomes))
	summaryStyled := lipgloss.NewStyle().Bold(true).Foreground(totalColor(total, failed)).Render(summary)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summaryStyled))
	b.WriteString("\n\n")

	// ── Locales ──
	for i, o := range outcomes {
		renderLocale(&b, o)
		if i < len(outcomes)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	return b.String()
}

func renderLocale(b *strings.Builder, o domain.LocaleOutcome) {
	name := localeStyle.Render(padRight(o.Locale, 8))
	if o.Failed {
		fmt.Fprintf(b, "  %s %s  %s\n", name, failStyle.Render("failed"), dimStyle.Render(o.Error))
		return
	}
	r := o.Result
	if r == nil {
		return
	}

	transform := dimStyle.Render(string(r.Transform))
	if len(r.Issues) == 0 {
		fmt.Fprintf(b, "  %s %s  %s\n", name, passStyle.Render("no overflow"), transform)
	} else {
		c := r.CountBySeverity()
		fmt.Fprintf(b, "  %s %s  %s\n", name, severityCounts(c), transform)
	}
	if r.TransformError != "" {
		fmt.Fprintf(b, "    %s %s\n", warnTagStyle.Render("transform skipped"), dimStyle.Render(r.TransformError))
	}

	issues := append([]domain.OverflowIssue(nil), r.Issues...)
	sortBySeverity(issues)
	for _, is := range issues {
		renderIssue(b, is)
	}
}

func renderIssue(b *strings.Builder, is domain.OverflowIssue) {
	tag := severityTag(is.Severity)
	overflow := fmt.Sprintf("%s +%dpx", is.OverflowDirection, max(is.OverflowX, is.OverflowY))
	fmt.Fprintf(b, "    %s %s  %s\n", tag, is.Selector, dimStyle.Render(overflow))

	text := fmt.Sprintf("%q", is.TextContent)
	if is.EnglishText != "" && is.EnglishText != is.TextContent {
		text += dimStyle.Render(fmt.Sprintf("  (en: %q)", is.EnglishText))
	}
	fmt.Fprintf(b, "          %s\n", text)

	if src := sourceRef(is); src != "" {
		fmt.Fprintf(b, "          %s\n", fileStyle.Render(src))
	}
	if is.Suggestion != "" {
		fmt.Fprintf(b, "          %s\n", faintStyle.Render(is.Suggestion))
	}
}

func sourceRef(is domain.OverflowIssue) string {
	if is.SourceFile == "" {
		if is.ComponentName != "" {
			return "<" + is.ComponentName + ">"
		}
		return ""
	}
	ref := is.SourceFile
	if is.SourceLine > 0 {
		ref += fmt.Sprintf(":%d", is.SourceLine)
		if is.SourceColumn > 0 {
			ref += fmt.Sprintf(":%d", is.SourceColumn)
		}
	}
	if is.ComponentName != "" {
		ref += " <" + is.ComponentName + ">"
	}
	if is.Attribution != "" {
		ref += " · " + string(is.Attribution)
	}
	if is.TranslationKey != "" {
		ref += " · key " + is.TranslationKey
	}
	return ref
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func severityCounts(c map[string]int) string {
	var parts []string
	if n := c[domain.SeverityError]; n > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := c[domain.SeverityWarning]; n > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := c[domain.SeverityInfo]; n > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, "  ")
}

// sortBySeverity orders issues error first, keeping document order within a severity.
func sortBySeverity(issues []domain.OverflowIssue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return domain.SeverityRank(issues[i].Severity) > domain.SeverityRank(issues[j].Severity)
	})
}

func totalColor(total, failed int) lipgloss.Color {
	switch {
	case failed > 0:
		return danger
	case total == 0:
		return success
	default:
		return warning
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats audit history for terminal output.
func RenderHistory(runs []domain.AuditRun) string {
	if len(runs) == 0 {
		return "  " + dimStyle.Render("No audit history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Audit History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, r := range runs {
		hash := r.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := r.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		total := r.TotalIssues()
		failed := 0
		for _, l := range r.Locales {
			if l.Failed {
				failed++
			}
		}
		count := lipgloss.NewStyle().
			Foreground(totalColor(total, failed)).
			Render(fmt.Sprintf("%d issues", total))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			count,
			dimStyle.Render(fmt.Sprintf("%d locales", len(r.Locales))),
		)
		if failed > 0 {
			line += "  " + failStyle.Render(fmt.Sprintf("%d failed", failed))
		}

		if i > 0 {
			diff := total - runs[i-1].TotalIssues()
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
