package detect

import (
	"strconv"
	"strings"

	"github.com/locaudit/locaudit/internal/domain"
)

const maxSelectorClasses = 2

// selectorFor short-circuits on the element's own id; otherwise it joins the
// segment chain from below body down to the element.
func selectorFor(el *domain.Node, path []string) string {
	if id := el.ID(); id != "" {
		return "#" + CSSEscape(id)
	}
	return strings.Join(path, " > ")
}

// segment renders tag[.c1.c2][:nth-child(i)]. The index is the 1-based
// position among same-tag siblings and is added only when such siblings exist.
func segment(el *domain.Node, tag string, siblings []*domain.Node) string {
	var b strings.Builder
	b.WriteString(tag)

	classes := el.Classes()
	if len(classes) > maxSelectorClasses {
		classes = classes[:maxSelectorClasses]
	}
	for _, c := range classes {
		b.WriteByte('.')
		b.WriteString(CSSEscape(c))
	}

	index, same := 0, 0
	for _, s := range siblings {
		if !strings.EqualFold(s.Tag, tag) {
			continue
		}
		same++
		if s == el {
			index = same
		}
	}
	if same > 1 {
		b.WriteString(":nth-child(")
		b.WriteString(strconv.Itoa(index))
		b.WriteByte(')')
	}
	return b.String()
}

// CSSEscape escapes an identifier for use in a selector, following the
// CSS.escape algorithm.
func CSSEscape(ident string) string {
	var b strings.Builder
	runes := []rune(ident)
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('�')
		case r >= 0x1 && r <= 0x1f || r == 0x7f:
			writeCodePoint(&b, r)
		case i == 0 && r >= '0' && r <= '9':
			writeCodePoint(&b, r)
		case i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			writeCodePoint(&b, r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeCodePoint(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(r), 16))
	b.WriteByte(' ')
}
