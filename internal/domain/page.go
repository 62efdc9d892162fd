package domain

// PageScript is a JavaScript function expression evaluated in the page with
// a single JSON argument.
type PageScript struct {
	Name   string
	Source string
}

// SnapshotArgs configures the DOM snapshot script. PruneTags are serialized without children.
type SnapshotArgs struct {
	Attributes []string `json:"attributes"`
	PruneTags  []string `json:"pruneTags"`
	Frameworks bool     `json:"frameworks"`
}

// TextCollectArgs configures text collection for the pseudo-locale transform.
type TextCollectArgs struct {
	SkipTags   []string `json:"skipTags"`
	Attributes []string `json:"attributes"`
}

// TextItem is one collected text node or attribute value. Index is the
// deterministic walk position; Attr is empty for text nodes.
type TextItem struct {
	Index int    `json:"index"`
	Attr  string `json:"attr,omitempty"`
	Value string `json:"value"`
}

// TextCollection is the CollectText result.
type TextCollection struct {
	Items []TextItem `json:"items"`
}

// TextReplacement rewrites one collected item if it still holds From.
type TextReplacement struct {
	Index int    `json:"index"`
	Attr  string `json:"attr,omitempty"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// TextPatch is the ApplyText argument.
type TextPatch struct {
	SkipTags     []string          `json:"skipTags"`
	Attributes   []string          `json:"attributes"`
	Replacements []TextReplacement `json:"replacements"`
}

// StyleItem is one element carrying an inline style attribute.
type StyleItem struct {
	Index int    `json:"index"`
	Style string `json:"style"`
}

// StyleCollection is the CollectStyles result.
type StyleCollection struct {
	Items []StyleItem `json:"items"`
}

// StyleReplacement rewrites one inline style if it still holds From.
type StyleReplacement struct {
	Index int    `json:"index"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// RTLPatch is the ApplyRTL argument. Lint holds the indices of styled
// elements to mark with LintAttribute.
type RTLPatch struct {
	Lang          string             `json:"lang"`
	Stylesheet    string             `json:"stylesheet"`
	LintAttribute string             `json:"lintAttribute"`
	Lint          []int              `json:"lint"`
	Replacements  []StyleReplacement `json:"replacements"`
}

// ApplyResult reports how many replacements were applied in-page.
type ApplyResult struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}
