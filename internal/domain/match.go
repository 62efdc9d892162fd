package domain

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Normalize trims, collapses internal whitespace and lower-cases text. It is
// the key function for every text index.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// MatchExactThenContains looks query up in m in two phases: an exact key
// match, then the first key in insertion order where either string contains
// the other. query must already be normalized.
//
// The containment phase is low precision: a short query such as "save"
// matches "save changes" and vice versa. Callers treat results as hints.
func MatchExactThenContains[V any](m *orderedmap.OrderedMap[string, V], query string) (string, V, bool) {
	var zero V
	if m == nil || query == "" {
		return "", zero, false
	}
	if v, ok := m.Get(query); ok {
		return query, v, true
	}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(pair.Key, query) || strings.Contains(query, pair.Key) {
			return pair.Key, pair.Value, true
		}
	}
	return "", zero, false
}
