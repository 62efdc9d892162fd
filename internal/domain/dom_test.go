package domain_test

import (
	"testing"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNode_TextContent_ConcatenatesDescendants(t *testing.T) {
	n := &domain.Node{Type: domain.NodeElement, Tag: "p", Children: []*domain.Node{
		{Type: domain.NodeText, Text: "  Hello "},
		{Type: domain.NodeElement, Tag: "b", Children: []*domain.Node{
			{Type: domain.NodeText, Text: "brave"},
		}},
		{Type: domain.NodeText, Text: " world  "},
	}}
	assert.Equal(t, "  Hello brave world  ", n.TextContent())
}

func TestNode_Attributes(t *testing.T) {
	n := &domain.Node{Type: domain.NodeElement, Tag: "div", Attrs: map[string]string{
		"id":    "main",
		"class": "  card   card--wide  hero ",
	}}
	assert.Equal(t, "main", n.ID())
	assert.Equal(t, []string{"card", "card--wide", "hero"}, n.Classes())

	_, ok := n.Attr("title")
	assert.False(t, ok)

	var nilNode *domain.Node
	_, ok = nilNode.Attr("id")
	assert.False(t, ok)
}

func TestNode_ElementChildren(t *testing.T) {
	n := &domain.Node{Type: domain.NodeElement, Children: []*domain.Node{
		{Type: domain.NodeText, Text: "x"},
		{Type: domain.NodeElement, Tag: "li"},
		{Type: domain.NodeElement, Tag: "li"},
	}}
	assert.Len(t, n.ElementChildren(), 2)
}

func TestNode_ZeroArea(t *testing.T) {
	assert.True(t, (&domain.Node{Rect: domain.Rect{Width: 0, Height: 10}}).ZeroArea())
	assert.True(t, (&domain.Node{Rect: domain.Rect{Width: 10, Height: 0}}).ZeroArea())
	assert.False(t, (&domain.Node{Rect: domain.Rect{Width: 0.5, Height: 0.5}}).ZeroArea())
}
