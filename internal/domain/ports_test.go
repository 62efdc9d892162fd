package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocaleSet_Locales_Sorted(t *testing.T) {
	s := &LocaleSet{Others: map[string]map[string]string{
		"fr": {}, "ar": {}, "de": {},
	}}
	assert.Equal(t, []string{"ar", "de", "fr"}, s.Locales())
}

func TestLocaleSet_Locales_Nil(t *testing.T) {
	var s *LocaleSet
	assert.Empty(t, s.Locales())
}

func TestSortedKeys_Empty(t *testing.T) {
	assert.Empty(t, sortedKeys(map[string]int{}))
}
