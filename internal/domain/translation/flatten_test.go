package translation_test

import (
	"testing"

	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Flat(t *testing.T) {
	got, err := translation.Parse([]byte(`{"cta": "Get Started", "title": "Welcome"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cta": "Get Started", "title": "Welcome"}, got)
}

func TestParse_NestedBecomesDotted(t *testing.T) {
	got, err := translation.Parse([]byte(`{
		"nav": {"pricing": "Pricing", "docs": {"title": "Docs"}},
		"count": 3,
		"beta": true,
		"list": ["a"],
		"none": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"nav.pricing":    "Pricing",
		"nav.docs.title": "Docs",
		"count":          "3",
		"beta":           "true",
	}, got)
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{`{"cta": `, `["a"]`, `null`, ``} {
		_, err := translation.Parse([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}
