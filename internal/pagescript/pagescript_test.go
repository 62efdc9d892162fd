package pagescript_test

import (
	"strings"
	"testing"

	"github.com/locaudit/locaudit/internal/pagescript"
	"github.com/stretchr/testify/assert"
)

func TestScripts_AreFunctionExpressions(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range pagescript.All() {
		assert.NotEmpty(t, s.Name)
		assert.False(t, seen[s.Name], "duplicate script %s", s.Name)
		seen[s.Name] = true

		assert.True(t, strings.HasPrefix(s.Source, "("), "%s must start with an arrow parameter list", s.Name)
		assert.Contains(t, s.Source, "=>", s.Name)
		assert.True(t, strings.HasSuffix(s.Source, "}"), "%s must end with the function body", s.Name)
	}
	assert.Len(t, seen, 5)
}

func TestApplyScripts_VerifyOriginalValue(t *testing.T) {
	assert.Contains(t, pagescript.ApplyText.Source, "=== r.from")
	assert.Contains(t, pagescript.ApplyRTL.Source, "=== r.from")
}

func TestApplyRTL_MarksLintIndices(t *testing.T) {
	assert.Contains(t, pagescript.ApplyRTL.Source, "args.lintAttribute")
	assert.Contains(t, pagescript.ApplyRTL.Source, "args.lint ||")
}

func TestSnapshot_KeepsReactHostSource(t *testing.T) {
	src := pagescript.Snapshot.Source
	assert.Contains(t, src, "_debugOwner")
	assert.NotContains(t, src, `typeof type === "string") continue`)
}

func TestTextSkipTags(t *testing.T) {
	for _, tag := range []string{"script", "style", "noscript", "svg", "textarea", "input"} {
		assert.Contains(t, pagescript.TextSkipTags, tag)
	}
	assert.Equal(t, []string{"placeholder", "title", "aria-label"}, pagescript.TranslatableAttributes)
}
