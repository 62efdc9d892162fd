// Package detect finds overflowing elements in a DOM snapshot.
package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/locaudit/locaudit/internal/domain"
)

// MaxTextLength is the number of runes kept in OverflowIssue.TextContent.
const MaxTextLength = 50

// Options configures a Detector.
type Options struct {
	// ExcludeTags are skipped together with their whole subtree.
	// Nil selects domain.DefaultExcludeTags.
	ExcludeTags []string
	// Origins attributes issues inline. Nil disables runtime attribution.
	Origins domain.OriginProvider
}

// Detector walks a snapshot and emits one issue per overflowing element.
type Detector struct {
	exclude map[string]bool
	origins domain.OriginProvider
}

// New creates a Detector.
func New(opts Options) *Detector {
	tags := opts.ExcludeTags
	if tags == nil {
		tags = domain.DefaultExcludeTags
	}
	exclude := make(map[string]bool, len(tags))
	for _, t := range tags {
		exclude[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &Detector{exclude: exclude, origins: opts.Origins}
}

// Detect returns issues for every descendant element of body in document order.
func (d *Detector) Detect(body *domain.Node, locale string) []domain.OverflowIssue {
	if body == nil {
		return nil
	}
	var issues []domain.OverflowIssue
	d.walk(body, nil, locale, &issues)
	return issues
}

func (d *Detector) walk(parent *domain.Node, path []string, locale string, out *[]domain.OverflowIssue) {
	siblings := parent.ElementChildren()
	for _, el := range siblings {
		tag := strings.ToLower(el.Tag)
		if d.exclude[tag] {
			continue
		}

		elPath := append(path[:len(path):len(path)], segment(el, tag, siblings))
		if !el.ZeroArea() {
			if is, ok := d.inspect(el, tag, elPath, locale); ok {
				*out = append(*out, is)
			}
		}
		d.walk(el, elPath, locale, out)
	}
}

func (d *Detector) inspect(el *domain.Node, tag string, path []string, locale string) (domain.OverflowIssue, bool) {
	horizontal := domain.HasOverflow(el.ScrollWidth, el.OffsetWidth)
	vertical := domain.HasOverflow(el.ScrollHeight, el.OffsetHeight)
	direction := domain.DirectionFor(horizontal, vertical)
	if direction == "" {
		return domain.OverflowIssue{}, false
	}

	dw := el.ScrollWidth - el.OffsetWidth
	dh := el.ScrollHeight - el.OffsetHeight
	full := strings.TrimSpace(el.TextContent())

	is := domain.OverflowIssue{
		Selector:          selectorFor(el, path),
		TagName:           tag,
		TextContent:       Truncate(full, MaxTextLength),
		OffsetWidth:       el.OffsetWidth,
		OffsetHeight:      el.OffsetHeight,
		ScrollWidth:       el.ScrollWidth,
		ScrollHeight:      el.ScrollHeight,
		OverflowX:         max(dw, 0),
		OverflowY:         max(dh, 0),
		OverflowDirection: direction,
		Severity:          domain.SeverityFor(max(dw, dh)),
		Locale:            locale,
		Suggestion:        Suggest(direction, tag),
		FullText:          full,
	}

	if d.origins != nil {
		if o, ok := d.origins.OriginOf(el); ok {
			is.SourceFile = o.File
			is.SourceLine = o.Line
			is.SourceColumn = o.Column
			is.ComponentName = o.ComponentName
			is.Attribution = o.Kind
		}
	}
	return is, true
}

// Truncate keeps the first n runes of s and appends "..." only if it cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
