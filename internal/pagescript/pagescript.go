// Package pagescript holds the JavaScript functions evaluated inside the page.
//
// Each script is a single function expression taking one JSON argument. The
// scripts only serialize or patch the DOM; every decision is made in Go.
// Collect and apply pairs walk the document in the same order, so an item's
// index identifies the same node in both, and apply verifies the original
// value before writing.
package pagescript

import (
	_ "embed"
	"strings"

	"github.com/locaudit/locaudit/internal/domain"
)

//go:embed js/snapshot.js
var snapshotSource string

//go:embed js/collect_text.js
var collectTextSource string

//go:embed js/apply_text.js
var applyTextSource string

//go:embed js/collect_styles.js
var collectStylesSource string

//go:embed js/apply_rtl.js
var applyRTLSource string

var (
	// Snapshot serializes document.body into a domain.Node tree.
	Snapshot = script("snapshot", snapshotSource)
	// CollectText lists text nodes and translatable attributes.
	CollectText = script("collect_text", collectTextSource)
	// ApplyText writes pseudo-localized values back.
	ApplyText = script("apply_text", applyTextSource)
	// CollectStyles lists inline style attributes in document order.
	CollectStyles = script("collect_styles", collectStylesSource)
	// ApplyRTL sets dir/lang, injects the RTL stylesheet and flips inline styles.
	ApplyRTL = script("apply_rtl", applyRTLSource)
)

// All returns every script, for diagnostics and tests.
func All() []domain.PageScript {
	return []domain.PageScript{Snapshot, CollectText, ApplyText, CollectStyles, ApplyRTL}
}

// TranslatableAttributes are pseudo-localized alongside text nodes.
var TranslatableAttributes = []string{"placeholder", "title", "aria-label"}

// TextSkipTags are containers whose text is never pseudo-localized.
var TextSkipTags = []string{"script", "style", "noscript", "svg", "textarea", "input"}

func script(name, src string) domain.PageScript {
	return domain.PageScript{Name: name, Source: strings.TrimSpace(src)}
}
