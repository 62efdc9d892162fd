// Package locale simulates target-locale rendering on a page that has no real
// translation: pseudo-localization for text expansion and RTL flips for
// right-to-left scripts.
package locale

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	openBracket  = '['
	closeBracket = ']'
)

// PaddingGlyphs are appended cyclically to simulate expansion.
var PaddingGlyphs = []rune{'·', '~', '°'}

var accents = map[rune]rune{
	'a': 'å', 'b': 'ƀ', 'c': 'ç', 'd': 'ð', 'e': 'é', 'f': 'ƒ', 'g': 'ĝ',
	'h': 'ĥ', 'i': 'î', 'j': 'ĵ', 'k': 'ķ', 'l': 'ĺ', 'm': 'ɱ', 'n': 'ñ',
	'o': 'ö', 'p': 'þ', 'q': 'ǫ', 'r': 'ŕ', 's': 'š', 't': 'ţ', 'u': 'û',
	'v': 'ṽ', 'w': 'ŵ', 'x': 'ẋ', 'y': 'ý', 'z': 'ž',
	'A': 'Å', 'B': 'Ɓ', 'C': 'Ç', 'D': 'Ð', 'E': 'É', 'F': 'Ƒ', 'G': 'Ĝ',
	'H': 'Ĥ', 'I': 'Î', 'J': 'Ĵ', 'K': 'Ķ', 'L': 'Ĺ', 'M': 'Ṁ', 'N': 'Ñ',
	'O': 'Ö', 'P': 'Þ', 'Q': 'Ǫ', 'R': 'Ŕ', 'S': 'Š', 'T': 'Ţ', 'U': 'Û',
	'V': 'Ṽ', 'W': 'Ŵ', 'X': 'Ẋ', 'Y': 'Ý', 'Z': 'Ž',
}

var plain = invert(accents)

var (
	urlLike        = regexp.MustCompile(`(?i)^([a-z][a-z0-9+.-]*://|mailto:|tel:|www\.)`)
	numericOrPunct = regexp.MustCompile(`^[\d\s\p{P}\p{S}]+$`)
	pseudoGroup    = regexp.MustCompile(`\[([^\[\]]*)\]`)
)

// ShouldSkip reports whether text must be left untouched: blank, URL-like,
// template or markup bearing, purely numeric or punctuation, or already
// pseudo-localized.
func ShouldSkip(text string) bool {
	core := strings.TrimSpace(text)
	switch {
	case core == "":
		return true
	case urlLike.MatchString(core):
		return true
	case strings.ContainsAny(core, "{}<>"):
		return true
	case numericOrPunct.MatchString(core):
		return true
	}
	return IsPseudolocalized(core)
}

// IsPseudolocalized reports whether text is a single bracketed pseudo string.
func IsPseudolocalized(text string) bool {
	core := strings.TrimSpace(text)
	if len(core) < 2 || core[0] != openBracket || core[len(core)-1] != closeBracket {
		return false
	}
	inner := []rune(core[1 : len(core)-1])
	return len(inner) > 0 && isPadding(inner[len(inner)-1])
}

// PaddingCount is ceil(runes × factor), ignoring float noise below 1e-9.
func PaddingCount(runes int, factor float64) int {
	if runes <= 0 || factor <= 0 {
		return 0
	}
	return int(math.Ceil(float64(runes)*factor - 1e-9))
}

// Pseudolocalize accents, pads and brackets text. Leading and trailing
// whitespace stays outside the brackets. Output is a pure function of input.
func Pseudolocalize(text string, factor float64) string {
	if ShouldSkip(text) {
		return text
	}

	lead, core, trail := splitSpace(text)
	n := utf8.RuneCountInString(core)
	pad := PaddingCount(n, factor)

	var b strings.Builder
	b.Grow(len(text) + (n+pad)*2 + 2)
	b.WriteString(lead)
	b.WriteRune(openBracket)
	for _, r := range core {
		if a, ok := accents[r]; ok {
			r = a
		}
		b.WriteRune(r)
	}
	for i := 0; i < pad; i++ {
		b.WriteRune(PaddingGlyphs[i%len(PaddingGlyphs)])
	}
	b.WriteRune(closeBracket)
	b.WriteString(trail)
	return b.String()
}

// Depseudolocalize reverses Pseudolocalize on every bracketed group in text.
// Text without pseudo groups is returned unchanged.
func Depseudolocalize(text string) string {
	return pseudoGroup.ReplaceAllStringFunc(text, func(group string) string {
		inner := []rune(group[1 : len(group)-1])
		end := len(inner)
		for end > 0 && isPadding(inner[end-1]) {
			end--
		}
		if end == len(inner) {
			return group
		}
		out := make([]rune, 0, end)
		for _, r := range inner[:end] {
			if p, ok := plain[r]; ok {
				r = p
			}
			out = append(out, r)
		}
		return string(out)
	})
}

func isPadding(r rune) bool {
	for _, p := range PaddingGlyphs {
		if r == p {
			return true
		}
	}
	return false
}

func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
