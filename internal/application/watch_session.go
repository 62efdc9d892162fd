package application

import (
	"sync"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/pkg/metrics"
)

// WatchSession remembers issues already reported during a watch so each
// audit only surfaces what is new. It is safe for concurrent use.
type WatchSession struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWatchSession returns an empty session.
func NewWatchSession() *WatchSession {
	return &WatchSession{seen: make(map[string]struct{})}
}

// Observe records every issue in results and returns those not seen before,
// in result order.
func (w *WatchSession) Observe(results []domain.AuditResult) []domain.OverflowIssue {
	w.mu.Lock()
	defer w.mu.Unlock()

	var fresh []domain.OverflowIssue
	for _, r := range results {
		for _, is := range r.Issues {
			id := issueIdentity(is)
			if _, ok := w.seen[id]; ok {
				continue
			}
			w.seen[id] = struct{}{}
			fresh = append(fresh, is)
		}
	}
	metrics.WatchNewIssuesTotal.Add(float64(len(fresh)))
	return fresh
}

// Reset forgets every observed issue.
func (w *WatchSession) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen = make(map[string]struct{})
}

// Len returns the number of distinct issues observed since the last Reset.
func (w *WatchSession) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}

func issueIdentity(is domain.OverflowIssue) string {
	return is.Locale + "|" + is.Selector + "|" + is.TextContent
}
