package application

import (
	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/locaudit/locaudit/internal/domain/translation"
)

// ReverseLookup maps rendered text back to its English source. Translated
// text is searched first, with hint as the preferred locale. English and
// pseudo-localized English then resolve through the key index.
func ReverseLookup(m *translation.ReverseMapper, text, hint string) (*domain.TranslationEntry, bool) {
	if e, ok := m.FindEnglishOriginal(text, hint); ok {
		return e, true
	}

	english := text
	if locale.IsPseudolocalized(text) {
		english = locale.Depseudolocalize(text)
	}
	key, ok := m.KeyForEnglish(english)
	if !ok {
		return nil, false
	}
	en, _ := m.English(key)
	return &domain.TranslationEntry{EnglishText: en, TranslatedText: text, Key: key}, true
}
