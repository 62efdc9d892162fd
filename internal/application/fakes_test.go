package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/pagescript"
)

// glyphWidth is the pixel width the fake layout engine gives every rune.
const glyphWidth = 8

// el builds an element node for fake pages.
func el(tag string, attrs map[string]string, children ...*domain.Node) *domain.Node {
	return &domain.Node{Type: domain.NodeElement, Tag: tag, Attrs: attrs, Children: children}
}

func text(s string) *domain.Node {
	return &domain.Node{Type: domain.NodeText, Text: s}
}

// fakeBrowser hands out one fakePage per Open.
type fakeBrowser struct {
	page    *fakePage
	openErr error
	opened  int
}

func (b *fakeBrowser) Open(context.Context) (domain.Page, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.opened++
	return b.page, nil
}

func (b *fakeBrowser) Close() error { return nil }

// fakePage serves documents by URL and lays them out at glyphWidth per rune.
// Elements with data-fixed-width keep that width and overflow when their text
// is wider; data-hidden elements have no box.
type fakePage struct {
	mu sync.Mutex

	documents map[string]func() *domain.Node
	navErr    map[string]error
	scriptErr map[string]error

	body     *domain.Node
	rtlPatch *domain.RTLPatch
	visited  []string
	scripts  []string
	waits    []time.Duration
	closed   bool
}

func newFakePage() *fakePage {
	return &fakePage{
		documents: map[string]func() *domain.Node{},
		navErr:    map[string]error{},
		scriptErr: map[string]error{},
	}
}

func (p *fakePage) serve(url string, build func() *domain.Node) *fakePage {
	p.documents[url] = build
	return p
}

func (p *fakePage) Navigate(_ context.Context, url string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visited = append(p.visited, url)
	if err := p.navErr[url]; err != nil {
		return err
	}
	build, ok := p.documents[url]
	if !ok {
		return fmt.Errorf("net::ERR_CONNECTION_REFUSED at %s", url)
	}
	p.body = build()
	return nil
}

func (p *fakePage) Evaluate(_ context.Context, script domain.PageScript, args any, out any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts = append(p.scripts, script.Name)
	if err := p.scriptErr[script.Name]; err != nil {
		return err
	}

	var result any
	switch script.Name {
	case pagescript.Snapshot.Name:
		if p.body == nil {
			result = nil
			break
		}
		layout(p.body)
		result = p.body
	case pagescript.CollectText.Name:
		a := args.(domain.TextCollectArgs)
		var items []domain.TextItem
		walkText(p.body, a.SkipTags, a.Attributes, func(it domain.TextItem, _ func(string)) {
			items = append(items, it)
		})
		result = domain.TextCollection{Items: items}
	case pagescript.ApplyText.Name:
		a := args.(domain.TextPatch)
		byIndex := map[int]domain.TextReplacement{}
		for _, r := range a.Replacements {
			byIndex[r.Index] = r
		}
		var res domain.ApplyResult
		walkText(p.body, a.SkipTags, a.Attributes, func(it domain.TextItem, set func(string)) {
			r, ok := byIndex[it.Index]
			if !ok {
				return
			}
			if r.Attr == it.Attr && r.From == it.Value {
				set(r.To)
				res.Applied++
			} else {
				res.Skipped++
			}
		})
		result = res
	case pagescript.CollectStyles.Name:
		var items []domain.StyleItem
		walkStyles(p.body, func(i int, n *domain.Node) {
			items = append(items, domain.StyleItem{Index: i, Style: n.Attrs["style"]})
		})
		result = domain.StyleCollection{Items: items}
	case pagescript.ApplyRTL.Name:
		a := args.(domain.RTLPatch)
		p.rtlPatch = &a
		byIndex := map[int]domain.StyleReplacement{}
		for _, r := range a.Replacements {
			byIndex[r.Index] = r
		}
		lint := map[int]bool{}
		for _, i := range a.Lint {
			lint[i] = true
		}
		var res domain.ApplyResult
		walkStyles(p.body, func(i int, n *domain.Node) {
			if lint[i] {
				n.Attrs[a.LintAttribute] = ""
			}
			if r, ok := byIndex[i]; ok && n.Attrs["style"] == r.From {
				n.Attrs["style"] = r.To
				res.Applied++
			}
		})
		if p.body.Attrs == nil {
			p.body.Attrs = map[string]string{}
		}
		p.body.Attrs["dir"] = "rtl"
		p.body.Attrs["lang"] = a.Lang
		result = res
	default:
		return errors.New("unknown script " + script.Name)
	}

	if out == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *fakePage) Wait(_ context.Context, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits = append(p.waits, d)
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

// layout assigns box and scroll sizes bottom-up.
func layout(n *domain.Node) (w int) {
	if n.Type == domain.NodeText {
		return utf8.RuneCountInString(strings.TrimSpace(n.Text)) * glyphWidth
	}
	for _, c := range n.Children {
		w += layout(c)
	}
	if _, hidden := n.Attrs["data-hidden"]; hidden {
		n.Rect = domain.Rect{}
		n.OffsetWidth, n.OffsetHeight, n.ScrollWidth, n.ScrollHeight = 0, 0, 0, 0
		return 0
	}
	box := w
	if fixed, ok := n.Attrs["data-fixed-width"]; ok {
		box, _ = strconv.Atoi(fixed)
	}
	n.OffsetWidth, n.OffsetHeight = box, 20
	n.ScrollWidth, n.ScrollHeight = max(box, w), 20
	n.Rect = domain.Rect{Width: float64(box), Height: 20}
	return box
}

func walkText(n *domain.Node, skip, attrs []string, visit func(domain.TextItem, func(string))) {
	idx := 0
	var walk func(*domain.Node)
	walk = func(n *domain.Node) {
		if n.Type == domain.NodeText {
			if strings.TrimSpace(n.Text) != "" {
				node := n
				visit(domain.TextItem{Index: idx, Value: n.Text}, func(s string) { node.Text = s })
				idx++
			}
			return
		}
		for _, a := range attrs {
			if v, ok := n.Attrs[a]; ok && strings.TrimSpace(v) != "" {
				node, name := n, a
				visit(domain.TextItem{Index: idx, Attr: a, Value: v}, func(s string) { node.Attrs[name] = s })
				idx++
			}
		}
		for _, t := range skip {
			if n.Tag == t {
				return
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
}

func walkStyles(n *domain.Node, visit func(int, *domain.Node)) {
	idx := 0
	var walk func(*domain.Node)
	walk = func(n *domain.Node) {
		if n.Type != domain.NodeElement {
			return
		}
		if _, ok := n.Attrs["style"]; ok {
			visit(idx, n)
			idx++
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
}

// heroPage renders the fixture app's landing page with a fixed-width button.
func heroPage(cta string) func() *domain.Node {
	return func() *domain.Node {
		return el("body", nil,
			el("main", map[string]string{"class": "landing"},
				el("h1", nil, text("Ship")),
				el("button", map[string]string{"class": "cta", "data-fixed-width": "100", "style": "margin-left: 4px"}, text(cta)),
				el("span", map[string]string{"data-hidden": ""}, text("a hidden label that is far too long")),
			),
		)
	}
}
