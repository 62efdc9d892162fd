package locale

import "strings"

var rtlLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Farsi
	"ur": true, // Urdu
	"yi": true, // Yiddish
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// PrimarySubtag returns the lower-cased language subtag before the first hyphen.
func PrimarySubtag(locale string) string {
	primary, _, _ := strings.Cut(strings.TrimSpace(locale), "-")
	return strings.ToLower(primary)
}

// IsRTL reports whether locale is written right to left.
func IsRTL(locale string) bool {
	return rtlLanguages[PrimarySubtag(locale)]
}

const rtlStylesheet = `[dir="rtl"] [style*="text-align: left"],
[dir="rtl"] [style*="text-align:left"] {
  text-align: right !important;
}
[dir="rtl"] [style*="flex-direction: row"],
[dir="rtl"] [style*="flex-direction:row"] {
  flex-direction: row-reverse !important;
}
[dir="rtl"] [data-locaudit-rtl-lint] {
  outline: 2px dashed #e67e22 !important;
  outline-offset: 1px;
}
`

// RTLLintAttribute marks elements whose inline style was one-sided before
// flipping. The stylesheet outlines them.
const RTLLintAttribute = "data-locaudit-rtl-lint"

// RTLStylesheet returns the CSS injected for RTL simulation. The dashed
// outline marks elements carrying RTLLintAttribute.
func RTLStylesheet() string {
	return rtlStylesheet
}

var sidePairs = [][2]string{
	{"margin-left", "margin-right"},
	{"padding-left", "padding-right"},
	{"left", "right"},
}

// IsOneSided reports whether style sets a left margin, left padding or left
// offset without its right counterpart. Call it on the unflipped style.
func IsOneSided(style string) bool {
	props := map[string]bool{}
	for _, decl := range strings.Split(style, ";") {
		prop, _, ok := strings.Cut(decl, ":")
		if ok {
			props[strings.ToLower(strings.TrimSpace(prop))] = true
		}
	}
	for _, pair := range sidePairs {
		if props[pair[0]] && !props[pair[1]] {
			return true
		}
	}
	return false
}

var flippedProps = map[string]string{
	"margin-left":   "margin-right",
	"margin-right":  "margin-left",
	"padding-left":  "padding-right",
	"padding-right": "padding-left",
}

// FlipInlineStyle swaps left and right margin, padding and text-align values
// in an inline style declaration list. Other declarations keep their order
// and text.
func FlipInlineStyle(style string) string {
	decls := strings.Split(style, ";")
	changed := false

	for i, decl := range decls {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(prop))

		if to, ok := flippedProps[name]; ok {
			lead := prop[:len(prop)-len(strings.TrimLeft(prop, " \t\r\n"))]
			decls[i] = lead + to + ":" + value
			changed = true
			continue
		}
		if name == "text-align" {
			v := strings.ToLower(strings.TrimSpace(value))
			switch {
			case strings.HasPrefix(v, "left"):
				decls[i] = prop + ": right" + v[len("left"):]
				changed = true
			case strings.HasPrefix(v, "right"):
				decls[i] = prop + ": left" + v[len("right"):]
				changed = true
			}
		}
	}

	if !changed {
		return style
	}
	return strings.Join(decls, ";")
}
