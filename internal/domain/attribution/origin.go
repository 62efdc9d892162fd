// Package attribution maps rendered elements and text back to source code.
//
// Two independent mechanisms exist. Origin providers read signals captured
// on the element itself (marker attributes, framework debug frames, stable
// identifiers). The static Index hunts string literals in the project tree
// with plain-text regexes and is consulted when the element carries nothing.
package attribution

import (
	"strconv"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/locaudit/locaudit/internal/domain"
)

// DefaultMarkerAttribute holds "file:line[:column]" written by a build plugin.
const DefaultMarkerAttribute = "data-source-loc"

// IdentifierAttributes are read, in order, by IdentifierProvider.
var IdentifierAttributes = []string{"data-testid", "data-component", "id"}

// MarkerProvider reads an explicit source marker attribute.
type MarkerProvider struct {
	Attribute string
}

// OriginOf implements domain.OriginProvider.
func (p MarkerProvider) OriginOf(n *domain.Node) (*domain.ComponentOrigin, bool) {
	attr := p.Attribute
	if attr == "" {
		attr = DefaultMarkerAttribute
	}
	raw, ok := n.Attr(attr)
	if !ok {
		return nil, false
	}
	file, line, col := ParseMarker(raw)
	if file == "" {
		return nil, false
	}
	name, _ := n.Attr("data-component")
	return &domain.ComponentOrigin{
		File:          file,
		Line:          line,
		Column:        col,
		ComponentName: name,
		Kind:          domain.AttributionMarker,
	}, true
}

// ParseMarker splits "file:line[:column]". The file part may itself contain
// colons (drive letters); only trailing numeric parts are taken as positions.
func ParseMarker(raw string) (file string, line, col int) {
	file = strings.TrimSpace(raw)
	var nums []int
	for len(nums) < 2 {
		i := strings.LastIndexByte(file, ':')
		if i < 0 {
			break
		}
		n, err := strconv.Atoi(file[i+1:])
		if err != nil || n < 0 {
			break
		}
		nums = append(nums, n)
		file = file[:i]
	}
	switch len(nums) {
	case 2:
		line, col = nums[1], nums[0]
	case 1:
		line = nums[0]
	}
	return file, line, col
}

// FrameworkProvider reads component frames captured from a framework's
// per-node debug record. The first frame carrying a file wins; a denylisted
// component name is dropped but its file and line are still reported.
type FrameworkProvider struct {
	Denylist []string
}

// OriginOf implements domain.OriginProvider.
func (p FrameworkProvider) OriginOf(n *domain.Node) (*domain.ComponentOrigin, bool) {
	for _, f := range n.Frames {
		if f.File == "" {
			continue
		}
		name := f.Name
		if p.Denied(name) {
			name = ""
		}
		return &domain.ComponentOrigin{
			File:          f.File,
			Line:          f.Line,
			Column:        f.Column,
			ComponentName: name,
			Kind:          domain.AttributionFramework,
		}, true
	}
	return nil, false
}

// Denied reports whether name, or its last camel-case word, is denylisted.
func (p FrameworkProvider) Denied(name string) bool {
	if name == "" {
		return false
	}
	words := camelcase.Split(name)
	last := words[len(words)-1]
	for _, d := range p.Denylist {
		if strings.EqualFold(name, d) || strings.EqualFold(last, d) {
			return true
		}
	}
	return false
}

// IdentifierProvider falls back to stable identifiers. It yields a component
// name only, never a file.
type IdentifierProvider struct{}

// OriginOf implements domain.OriginProvider.
func (IdentifierProvider) OriginOf(n *domain.Node) (*domain.ComponentOrigin, bool) {
	for _, attr := range IdentifierAttributes {
		if v, ok := n.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return &domain.ComponentOrigin{
				ComponentName: strings.TrimSpace(v),
				Kind:          domain.AttributionIdentifier,
			}, true
		}
	}
	return nil, false
}

// ChainProvider returns the first provider's hit.
type ChainProvider []domain.OriginProvider

// OriginOf implements domain.OriginProvider.
func (c ChainProvider) OriginOf(n *domain.Node) (*domain.ComponentOrigin, bool) {
	for _, p := range c {
		if o, ok := p.OriginOf(n); ok {
			return o, true
		}
	}
	return nil, false
}

// NewChain builds the standard cascade: marker, framework frames, identifiers.
func NewChain(markerAttr string, frameworks bool, denylist []string) ChainProvider {
	chain := ChainProvider{MarkerProvider{Attribute: markerAttr}}
	if frameworks {
		chain = append(chain, FrameworkProvider{Denylist: denylist})
	}
	return append(chain, IdentifierProvider{})
}
