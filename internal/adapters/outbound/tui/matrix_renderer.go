package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/locaudit/locaudit/internal/domain"
)

const matrixBarWidth = 20

type matrixRow struct {
	locale    string
	transform domain.TransformKind
	counts    map[string]int
	total     int
	failed    bool
}

// RenderMatrix renders one row per locale with severity counts and a bar
// scaled to the locale with the most issues. Locales with errors sort first.
func RenderMatrix(outcomes []domain.LocaleOutcome) string {
	if len(outcomes) == 0 {
		return "\n  " + dimStyle.Render("No locales audited.") + "\n\n"
	}

	rows := make([]matrixRow, 0, len(outcomes))
	peak := 0
	for _, o := range outcomes {
		r := matrixRow{locale: o.Locale, failed: o.Failed}
		if o.Result != nil {
			r.transform = o.Result.Transform
			r.counts = o.Result.CountBySeverity()
			r.total = o.Result.IssueCount
		}
		peak = max(peak, r.total)
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].failed != rows[j].failed {
			return rows[i].failed
		}
		return rows[i].counts[domain.SeverityError] > rows[j].counts[domain.SeverityError]
	})

	var b strings.Builder
	hdr := fmt.Sprintf("  %-8s %-7s %6s %6s %6s  %s", "Locale", "Mode", "Error", "Warn", "Info", "")
	b.WriteString("\n" + titleStyle.Render(hdr) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 64)) + "\n")

	for _, r := range rows {
		name := dimStyle.Render(truncateOrPad(r.locale, 8))
		if r.failed {
			fmt.Fprintf(&b, "  %s %s\n", name, failStyle.Render("✘ failed"))
			continue
		}
		fmt.Fprintf(&b, "  %s %-7s %6d %6d %6d  %s\n",
			name, r.transform,
			r.counts[domain.SeverityError], r.counts[domain.SeverityWarning], r.counts[domain.SeverityInfo],
			issueBar(r, peak))
	}
	b.WriteString("\n")
	return b.String()
}

func issueBar(r matrixRow, peak int) string {
	if peak == 0 {
		return passStyle.Render("✔")
	}
	filled := r.total * matrixBarWidth / peak
	if r.total > 0 && filled == 0 {
		filled = 1
	}
	color := warning
	if r.counts[domain.SeverityError] > 0 {
		color = danger
	} else if r.total == 0 {
		color = success
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", matrixBarWidth-filled))
}

func truncateOrPad(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return padRight(s, width)
}
