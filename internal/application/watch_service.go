package application

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/locaudit/locaudit/internal/pkg/logger"
	"github.com/locaudit/locaudit/internal/pkg/metrics"
)

// WatchCycle is the result of one re-audit in watch mode.
type WatchCycle struct {
	Number  int
	Changed []string
	Report  *AuditReport
	// New holds issues not reported earlier in the session.
	New []domain.OverflowIssue
	Err error
}

// WatchService re-audits a URL whenever the project's sources change.
// Audits run one at a time on the calling goroutine.
type WatchService struct {
	browser    domain.Browser
	watcher    domain.ChangeWatcher
	index      *IndexService
	translate  *TranslateService
	session    *WatchSession
	limiter    *rate.Limiter
	projectDir string
	config     domain.ProjectConfig
}

// NewWatchService creates a WatchService. translate may be nil when no
// locale files should be loaded.
func NewWatchService(
	browser domain.Browser,
	watcher domain.ChangeWatcher,
	index *IndexService,
	translate *TranslateService,
	projectDir string,
	cfg domain.ProjectConfig,
) *WatchService {
	return &WatchService{
		browser:    browser,
		watcher:    watcher,
		index:      index,
		translate:  translate,
		session:    NewWatchSession(),
		limiter:    rate.NewLimiter(rate.Every(cfg.WatchMinInterval()), 1),
		projectDir: projectDir,
		config:     cfg,
	}
}

// Session exposes the seen-issue set.
func (w *WatchService) Session() *WatchSession {
	return w.session
}

// Run audits once, then again after every batch of changes, until ctx is
// cancelled. onCycle receives every cycle, including failed ones.
func (w *WatchService) Run(ctx context.Context, req AuditRequest, onCycle func(WatchCycle)) error {
	changes, err := w.watcher.Watch(ctx, w.projectDir)
	if err != nil {
		return err
	}

	n := 0
	onCycle(w.cycle(ctx, n, nil, req))

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths, ok := <-changes:
			if !ok {
				return nil
			}
			metrics.WatcherEventsTotal.Add(float64(len(paths)))
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			paths = drain(changes, paths)
			n++
			w.session.Reset()
			onCycle(w.cycle(ctx, n, paths, req))
		}
	}
}

func (w *WatchService) cycle(ctx context.Context, n int, changed []string, req AuditRequest) WatchCycle {
	c := WatchCycle{Number: n, Changed: changed}
	start := time.Now()

	// 1. Rebuild index
	ix, _, err := w.index.Build(ctx, w.projectDir, w.config)
	if err != nil {
		c.Err = err
		return c
	}

	// 2. Reload translations
	mapper := translation.NewReverseMapper(nil, nil)
	if w.translate != nil {
		set, err := w.translate.LoadLocales(w.projectDir, w.config)
		if err != nil {
			logger.Debug("loading locales", zap.Error(err))
		} else {
			mapper = translation.FromLocaleSet(set)
		}
	}

	// 3. Audit
	report, err := NewAuditService(w.browser, w.config, ix, mapper).Audit(ctx, req)
	if err != nil {
		c.Err = err
		return c
	}
	c.Report = report
	c.New = w.session.Observe(report.Results())

	logger.Info("watch cycle finished",
		zap.Int("cycle", n),
		zap.Int("changed", len(changed)),
		zap.Int("new_issues", len(c.New)),
		zap.Duration("duration", time.Since(start)),
	)
	return c
}

// drain merges batches that queued while the limiter was waiting.
func drain(ch <-chan []string, acc []string) []string {
	for {
		select {
		case more, ok := <-ch:
			if !ok {
				return acc
			}
			acc = append(acc, more...)
		default:
			return acc
		}
	}
}
