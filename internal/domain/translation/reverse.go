// Package translation recovers English originals from rendered translated text.
package translation

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/locaudit/locaudit/internal/domain"
)

// SourceLocale is the authoritative locale for key to English text.
const SourceLocale = "en"

type reverseMap = orderedmap.OrderedMap[string, domain.TranslationEntry]

// ReverseMapper indexes locale files for reverse lookups. It is read-only
// after construction.
type ReverseMapper struct {
	english      map[string]string
	englishIndex *orderedmap.OrderedMap[string, string]
	locales      map[string]*reverseMap
	order        []string
}

// NewReverseMapper builds the English index and one reverse map per locale.
// Keys are inserted in sorted order so containment matches are reproducible.
func NewReverseMapper(english map[string]string, others map[string]map[string]string) *ReverseMapper {
	m := &ReverseMapper{
		english:      english,
		englishIndex: orderedmap.New[string, string](),
		locales:      make(map[string]*reverseMap, len(others)),
	}

	for _, key := range sortedKeys(english) {
		norm := domain.Normalize(english[key])
		if norm == "" {
			continue
		}
		if _, exists := m.englishIndex.Get(norm); !exists {
			m.englishIndex.Set(norm, key)
		}
	}

	for _, loc := range sortedKeys(others) {
		if isSource(loc) {
			continue
		}
		rm := orderedmap.New[string, domain.TranslationEntry]()
		strs := others[loc]
		for _, key := range sortedKeys(strs) {
			translated := strs[key]
			norm := domain.Normalize(translated)
			if norm == "" {
				continue
			}
			if _, exists := rm.Get(norm); exists {
				continue
			}
			en, ok := english[key]
			if !ok {
				en = key
			}
			rm.Set(norm, domain.TranslationEntry{EnglishText: en, TranslatedText: translated, Key: key})
		}
		m.locales[loc] = rm
		m.order = append(m.order, loc)
	}
	return m
}

// FromLocaleSet builds a mapper from loaded locale files. A nil set yields an
// empty mapper.
func FromLocaleSet(set *domain.LocaleSet) *ReverseMapper {
	if set == nil {
		return NewReverseMapper(nil, nil)
	}
	return NewReverseMapper(set.English, set.Others)
}

// Loaded reports whether any non-English locale data is present.
func (m *ReverseMapper) Loaded() bool {
	return len(m.order) > 0
}

// Locales returns the loaded non-English locales in sorted order.
func (m *ReverseMapper) Locales() []string {
	return append([]string(nil), m.order...)
}

// HasLocale reports whether locale, or its primary subtag, has a file.
func (m *ReverseMapper) HasLocale(locale string) bool {
	_, ok := m.resolve(locale)
	return ok
}

// FindEnglishOriginal returns the entry whose translation matches text. The
// hinted locale is searched first, then every loaded locale in sorted order;
// each search is exact then containment. It returns nil, false when nothing
// matches or no locale data was loaded.
func (m *ReverseMapper) FindEnglishOriginal(text, hint string) (*domain.TranslationEntry, bool) {
	if !m.Loaded() {
		return nil, false
	}
	q := domain.Normalize(text)
	if q == "" {
		return nil, false
	}

	searched := ""
	if hint != "" && !isSource(hint) {
		if loc, ok := m.resolve(hint); ok {
			searched = loc
			if e, ok := m.search(loc, q); ok {
				return e, true
			}
		}
	}

	for _, loc := range m.order {
		if loc == searched {
			continue
		}
		if e, ok := m.search(loc, q); ok {
			return e, true
		}
	}
	return nil, false
}

// KeyForEnglish returns the translation key whose English text matches text.
func (m *ReverseMapper) KeyForEnglish(text string) (string, bool) {
	_, key, ok := domain.MatchExactThenContains(m.englishIndex, domain.Normalize(text))
	return key, ok
}

// English returns the English text for key.
func (m *ReverseMapper) English(key string) (string, bool) {
	en, ok := m.english[key]
	return en, ok
}

func (m *ReverseMapper) search(loc, q string) (*domain.TranslationEntry, bool) {
	_, e, ok := domain.MatchExactThenContains(m.locales[loc], q)
	if !ok {
		return nil, false
	}
	return &e, true
}

// resolve maps a locale hint to a loaded locale: exact, case-insensitive,
// then primary subtag.
func (m *ReverseMapper) resolve(locale string) (string, bool) {
	if _, ok := m.locales[locale]; ok {
		return locale, true
	}
	for _, loc := range m.order {
		if strings.EqualFold(loc, locale) {
			return loc, true
		}
	}
	primary, _, found := strings.Cut(locale, "-")
	if !found {
		return "", false
	}
	for _, loc := range m.order {
		if strings.EqualFold(loc, primary) {
			return loc, true
		}
	}
	return "", false
}

func isSource(locale string) bool {
	primary, _, _ := strings.Cut(locale, "-")
	return strings.EqualFold(primary, SourceLocale)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
