package domain

import "time"

// OverflowIssue is one element whose rendered content exceeds its box.
type OverflowIssue struct {
	Selector          string `json:"selector"`
	TagName           string `json:"tagName"`
	TextContent       string `json:"textContent"`
	OffsetWidth       int    `json:"offsetWidth"`
	OffsetHeight      int    `json:"offsetHeight"`
	ScrollWidth       int    `json:"scrollWidth"`
	ScrollHeight      int    `json:"scrollHeight"`
	OverflowX         int    `json:"overflowX"`
	OverflowY         int    `json:"overflowY"`
	OverflowDirection string `json:"overflowDirection"`
	Severity          string `json:"severity"`
	Locale            string `json:"locale"`
	Suggestion        string `json:"suggestion,omitempty"`

	SourceFile     string          `json:"sourceFile,omitempty"`
	SourceLine     int             `json:"sourceLine,omitempty"`
	SourceColumn   int             `json:"sourceColumn,omitempty"`
	ComponentName  string          `json:"componentName,omitempty"`
	Attribution    AttributionKind `json:"attribution,omitempty"`
	EnglishText    string          `json:"englishText,omitempty"`
	TranslationKey string          `json:"translationKey,omitempty"`

	// FullText is the untruncated, trimmed text used for attribution lookups.
	FullText string `json:"-"`
}

// HasSource reports whether both file and line are known.
func (i OverflowIssue) HasSource() bool {
	return i.SourceFile != "" && i.SourceLine > 0
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

const (
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"
	DirectionBoth       = "both"
)

// AttributionKind records which signal produced an issue's source location.
type AttributionKind string

const (
	AttributionMarker     AttributionKind = "marker"
	AttributionFramework  AttributionKind = "framework"
	AttributionIdentifier AttributionKind = "identifier"
	AttributionI18n       AttributionKind = "i18n"
	AttributionJSX        AttributionKind = "jsx"
	AttributionString     AttributionKind = "string"
)

// TransformKind is the locale simulation actually applied to a page.
type TransformKind string

const (
	TransformNone   TransformKind = "none"
	TransformPseudo TransformKind = "pseudo"
	TransformRTL    TransformKind = "rtl"
)

// AuditResult is one locale's audit of one URL.
type AuditResult struct {
	URL            string          `json:"url"`
	Locale         string          `json:"locale"`
	Timestamp      time.Time       `json:"timestamp"`
	IssueCount     int             `json:"issueCount"`
	Issues         []OverflowIssue `json:"issues"`
	DurationMs     int64           `json:"durationMs"`
	Transform      TransformKind   `json:"transform"`
	TransformError string          `json:"transformError,omitempty"`
}

// CountBySeverity returns the number of issues at each severity.
func (r AuditResult) CountBySeverity() map[string]int {
	counts := map[string]int{SeverityError: 0, SeverityWarning: 0, SeverityInfo: 0}
	for _, is := range r.Issues {
		counts[is.Severity]++
	}
	return counts
}

// LocaleOutcome separates a locale that could not load from one that loaded
// and found nothing.
type LocaleOutcome struct {
	Locale string       `json:"locale"`
	Result *AuditResult `json:"result,omitempty"`
	Failed bool         `json:"failed"`
	Error  string       `json:"error,omitempty"`
}

// SourcePriority is the confidence tier of a static index entry.
type SourcePriority string

const (
	PriorityI18n   SourcePriority = "i18n"
	PriorityJSX    SourcePriority = "jsx"
	PriorityString SourcePriority = "string"
)

// Priorities lists tiers from highest to lowest confidence.
var Priorities = []SourcePriority{PriorityI18n, PriorityJSX, PriorityString}

// SourceLocation is a static index hit. Column is 1-based; 0 means unknown.
type SourceLocation struct {
	File     string         `json:"file"`
	Line     int            `json:"line"`
	Column   int            `json:"column,omitempty"`
	Priority SourcePriority `json:"priority"`
}

// Kind maps the tier to the attribution kind reported on issues.
func (l SourceLocation) Kind() AttributionKind {
	switch l.Priority {
	case PriorityI18n:
		return AttributionI18n
	case PriorityJSX:
		return AttributionJSX
	default:
		return AttributionString
	}
}

// TranslationEntry links a translated string back to its English original.
type TranslationEntry struct {
	EnglishText    string `json:"englishText"`
	TranslatedText string `json:"translatedText"`
	Key            string `json:"key"`
}

// ComponentOrigin is what a runtime origin provider recovered for an element.
// File and Line are empty for identifier-only origins.
type ComponentOrigin struct {
	File          string          `json:"file,omitempty"`
	Line          int             `json:"line,omitempty"`
	Column        int             `json:"column,omitempty"`
	ComponentName string          `json:"componentName,omitempty"`
	Kind          AttributionKind `json:"kind"`
}

// AuditRun is one persisted audit invocation.
type AuditRun struct {
	ID         string          `json:"id"`
	Timestamp  string          `json:"timestamp"`
	URL        string          `json:"url"`
	CommitHash string          `json:"commit_hash,omitempty"`
	Locales    []LocaleSummary `json:"locales"`
}

// LocaleSummary is the per-locale part of an AuditRun.
type LocaleSummary struct {
	Locale   string `json:"locale"`
	Failed   bool   `json:"failed,omitempty"`
	Issues   int    `json:"issues"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Infos    int    `json:"infos"`
}

// TotalIssues sums issues across all locales of the run.
func (r AuditRun) TotalIssues() int {
	n := 0
	for _, l := range r.Locales {
		n += l.Issues
	}
	return n
}
