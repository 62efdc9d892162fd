package translation_test

import (
	"testing"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMapper() *translation.ReverseMapper {
	english := map[string]string{
		"cta":         "Get Started",
		"nav.pricing": "Pricing",
		"footer":      "All rights reserved",
	}
	return translation.NewReverseMapper(english, map[string]map[string]string{
		"de": {
			"cta":         "Jetzt loslegen",
			"nav.pricing": "Preise",
			"orphan":      "Nur auf Deutsch",
		},
		"fr": {
			"cta":    "Commencer",
			"footer": "Tous droits réservés",
		},
	})
}

func TestFindEnglishOriginal_ExactWithHint(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Jetzt loslegen", "de")
	require.True(t, ok)
	assert.Equal(t, "Get Started", e.EnglishText)
	assert.Equal(t, "cta", e.Key)
	assert.Equal(t, "Jetzt loslegen", e.TranslatedText)
}

func TestFindEnglishOriginal_NormalizesQuery(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("  jetzt\n  LOSLEGEN ", "de")
	require.True(t, ok)
	assert.Equal(t, "cta", e.Key)
}

func TestFindEnglishOriginal_ContainsFallback(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Preise ansehen", "de")
	require.True(t, ok)
	assert.Equal(t, "nav.pricing", e.Key)
	assert.Equal(t, "Pricing", e.EnglishText)
}

func TestFindEnglishOriginal_FallsBackToOtherLocales(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Commencer", "de")
	require.True(t, ok)
	assert.Equal(t, "Get Started", e.EnglishText)
}

func TestFindEnglishOriginal_NoHintSearchesAll(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Tous droits réservés", "")
	require.True(t, ok)
	assert.Equal(t, "footer", e.Key)
}

func TestFindEnglishOriginal_PrimarySubtagHint(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Jetzt loslegen", "de-AT")
	require.True(t, ok)
	assert.Equal(t, "cta", e.Key)
}

func TestFindEnglishOriginal_MissingEnglishFallsBackToKey(t *testing.T) {
	e, ok := sampleMapper().FindEnglishOriginal("Nur auf Deutsch", "de")
	require.True(t, ok)
	assert.Equal(t, "orphan", e.EnglishText)
}

func TestFindEnglishOriginal_NoLocaleData(t *testing.T) {
	m := translation.NewReverseMapper(map[string]string{"cta": "Get Started"}, nil)
	e, ok := m.FindEnglishOriginal("Jetzt loslegen", "de")
	assert.False(t, ok)
	assert.Nil(t, e)

	e, ok = translation.FromLocaleSet(nil).FindEnglishOriginal("x", "")
	assert.False(t, ok)
	assert.Nil(t, e)
}

func TestFindEnglishOriginal_Miss(t *testing.T) {
	_, ok := sampleMapper().FindEnglishOriginal("Warenkorb", "de")
	assert.False(t, ok)
	_, ok = sampleMapper().FindEnglishOriginal("  ", "de")
	assert.False(t, ok)
}

func TestFindEnglishOriginal_FuzzyFalsePositive(t *testing.T) {
	// "Preis" is a different word, but containment still lands on "Preise".
	e, ok := sampleMapper().FindEnglishOriginal("Preis", "de")
	require.True(t, ok)
	assert.Equal(t, "nav.pricing", e.Key)
}

func TestKeyForEnglish(t *testing.T) {
	m := sampleMapper()
	key, ok := m.KeyForEnglish("get started")
	require.True(t, ok)
	assert.Equal(t, "cta", key)

	_, ok = m.KeyForEnglish("Checkout")
	assert.False(t, ok)
}

func TestEnglishAndLocales(t *testing.T) {
	m := sampleMapper()
	en, ok := m.English("nav.pricing")
	require.True(t, ok)
	assert.Equal(t, "Pricing", en)

	assert.Equal(t, []string{"de", "fr"}, m.Locales())
	assert.True(t, m.Loaded())
	assert.True(t, m.HasLocale("DE"))
	assert.True(t, m.HasLocale("fr-CA"))
	assert.False(t, m.HasLocale("ja"))
}

func TestNewReverseMapper_SkipsEnglishInOthers(t *testing.T) {
	m := translation.NewReverseMapper(nil, map[string]map[string]string{"en-GB": {"a": "Colour"}})
	assert.False(t, m.Loaded())
}

func TestFromLocaleSet(t *testing.T) {
	m := translation.FromLocaleSet(&domain.LocaleSet{
		English: map[string]string{"cta": "Get Started"},
		Others:  map[string]map[string]string{"de": {"cta": "Jetzt loslegen"}},
	})
	e, ok := m.FindEnglishOriginal("Jetzt loslegen", "de")
	require.True(t, ok)
	assert.Equal(t, "Get Started", e.EnglishText)
}
