package application

import (
	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/attribution"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/locaudit/locaudit/internal/domain/translation"
)

// Enricher adds English originals and static source locations to issues.
// Both inputs are optional and read-only.
type Enricher struct {
	index        *attribution.Index
	mapper       *translation.ReverseMapper
	sourceLocale string
}

// NewEnricher creates an Enricher. index and mapper may be nil.
func NewEnricher(index *attribution.Index, mapper *translation.ReverseMapper, sourceLocale string) *Enricher {
	return &Enricher{index: index, mapper: mapper, sourceLocale: sourceLocale}
}

// Enrich fills EnglishText, TranslationKey and, when runtime attribution
// found no file, a static source location. It never removes information.
func (e *Enricher) Enrich(is *domain.OverflowIssue, transform domain.TransformKind) {
	text := is.FullText
	if text == "" {
		text = is.TextContent
	}

	var english, key string
	switch {
	case transform == domain.TransformPseudo:
		english = locale.Depseudolocalize(text)
		if english != text {
			is.EnglishText = english
		}
		if e.mapper != nil {
			key, _ = e.mapper.KeyForEnglish(english)
		}
		text = english
	case e.mapper != nil && !sameLocale(is.Locale, e.sourceLocale):
		if entry, ok := e.mapper.FindEnglishOriginal(text, is.Locale); ok {
			english, key = entry.EnglishText, entry.Key
			is.EnglishText = english
		}
	case e.mapper != nil:
		key, _ = e.mapper.KeyForEnglish(text)
	}
	if key != "" {
		is.TranslationKey = key
	}

	if is.SourceFile != "" || e.index == nil {
		return
	}
	if loc, ok := e.lookup(text, english, key); ok {
		is.SourceFile = loc.File
		is.SourceLine = loc.Line
		is.SourceColumn = loc.Column
		is.Attribution = loc.Kind()
	}
}

// lookup tries every candidate string against each tier before moving to
// the next tier, so a translation key found in a t() call outranks a loose
// string-literal match on the English text.
func (e *Enricher) lookup(candidates ...string) (*domain.SourceLocation, bool) {
	uniq := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		n := domain.Normalize(c)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		uniq = append(uniq, n)
	}

	for _, p := range domain.Priorities {
		for _, c := range uniq {
			if loc, ok := e.index.LookupTier(p, c); ok {
				return loc, true
			}
		}
	}
	return nil, false
}

func sameLocale(a, b string) bool {
	return b != "" && locale.PrimarySubtag(a) == locale.PrimarySubtag(b)
}
