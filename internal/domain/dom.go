package domain

import "strings"

const (
	NodeElement = "element"
	NodeText    = "text"
)

// Rect is an element's bounding client rectangle size.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FrameworkFrame is one component frame recovered from a framework's
// per-node debug record, innermost first.
type FrameworkFrame struct {
	Framework string `json:"framework"`
	Name      string `json:"name,omitempty"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

// Node is a serialized DOM node captured in-page. Element nodes carry
// geometry; text nodes carry only Text.
type Node struct {
	Type         string            `json:"type"`
	Tag          string            `json:"tag,omitempty"`
	Text         string            `json:"text,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	Rect         Rect              `json:"rect"`
	OffsetWidth  int               `json:"offsetWidth"`
	OffsetHeight int               `json:"offsetHeight"`
	ScrollWidth  int               `json:"scrollWidth"`
	ScrollHeight int               `json:"scrollHeight"`
	Frames       []FrameworkFrame  `json:"frames,omitempty"`
	Children     []*Node           `json:"children,omitempty"`
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == NodeElement
}

// Attr returns an attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// Classes returns the element's class list in document order.
func (n *Node) Classes() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// ElementChildren returns only the element children of n.
func (n *Node) ElementChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// TextContent concatenates every descendant text node, like the DOM property.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == NodeText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.appendText(b)
	}
}

// ZeroArea reports whether the element's bounding rectangle is empty.
func (n *Node) ZeroArea() bool {
	return n.Rect.Width <= 0 || n.Rect.Height <= 0
}
