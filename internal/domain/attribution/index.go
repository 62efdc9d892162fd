package attribution

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/locaudit/locaudit/internal/domain"
)

type tier = orderedmap.OrderedMap[string, []domain.SourceLocation]

// Index maps normalized text to source locations, one insertion-ordered map
// per priority tier. It is built once and read-only afterwards.
type Index struct {
	tiers map[domain.SourcePriority]*tier
	files int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	tiers := make(map[domain.SourcePriority]*tier, len(domain.Priorities))
	for _, p := range domain.Priorities {
		tiers[p] = orderedmap.New[string, []domain.SourceLocation]()
	}
	return &Index{tiers: tiers}
}

// AddFile records every candidate of one file. Files must be added in a
// fixed order for lookups to be reproducible.
func (ix *Index) AddFile(file string, cands []domain.Candidate) {
	ix.files++
	for _, c := range cands {
		ix.add(file, c)
	}
}

func (ix *Index) add(file string, c domain.Candidate) {
	m, ok := ix.tiers[c.Priority]
	if !ok || c.Key == "" {
		return
	}
	loc := domain.SourceLocation{File: file, Line: c.Line, Column: c.Column, Priority: c.Priority}
	locs, _ := m.Get(c.Key)
	m.Set(c.Key, append(locs, loc))
}

// Lookup finds text in the i18n tier, then the rendered-text tier, then the
// string-literal tier, each via domain.MatchExactThenContains. A hit in a
// higher tier always wins, however loose its match.
func (ix *Index) Lookup(text string) (*domain.SourceLocation, bool) {
	q := domain.Normalize(text)
	if q == "" {
		return nil, false
	}
	for _, p := range domain.Priorities {
		if loc, ok := ix.lookupTier(p, q); ok {
			return loc, true
		}
	}
	return nil, false
}

// LookupTier searches a single tier.
func (ix *Index) LookupTier(p domain.SourcePriority, text string) (*domain.SourceLocation, bool) {
	return ix.lookupTier(p, domain.Normalize(text))
}

func (ix *Index) lookupTier(p domain.SourcePriority, q string) (*domain.SourceLocation, bool) {
	_, locs, ok := domain.MatchExactThenContains(ix.tiers[p], q)
	if !ok || len(locs) == 0 {
		return nil, false
	}
	loc := locs[0]
	return &loc, true
}

// All returns every location recorded for an exact normalized key in tier p.
func (ix *Index) All(p domain.SourcePriority, text string) []domain.SourceLocation {
	m, ok := ix.tiers[p]
	if !ok {
		return nil
	}
	locs, _ := m.Get(domain.Normalize(text))
	return locs
}

// Stats summarizes index size.
type Stats struct {
	Files   int                           `json:"files"`
	Entries map[domain.SourcePriority]int `json:"entries"`
}

// Stats returns the number of files indexed and keys per tier.
func (ix *Index) Stats() Stats {
	s := Stats{Files: ix.files, Entries: make(map[domain.SourcePriority]int, len(ix.tiers))}
	for p, m := range ix.tiers {
		s.Entries[p] = m.Len()
	}
	return s
}
