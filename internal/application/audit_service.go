package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/attribution"
	"github.com/locaudit/locaudit/internal/domain/detect"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/locaudit/locaudit/internal/domain/translation"
	"github.com/locaudit/locaudit/internal/pagescript"
	auditerrors "github.com/locaudit/locaudit/internal/pkg/errors"
	"github.com/locaudit/locaudit/internal/pkg/logger"
	"github.com/locaudit/locaudit/internal/pkg/metrics"
)

// AuditRequest describes one audit invocation.
type AuditRequest struct {
	URL     string
	Locales []string
	// FailFast stops after the first failed locale.
	FailFast bool
	// Dedupe collapses issues sharing a source location or text per locale.
	Dedupe bool
	// Progress is called after every locale pass. May be nil.
	Progress func(LocaleProgress)
}

// LocaleProgress reports a finished locale pass.
type LocaleProgress struct {
	Index   int
	Total   int
	Outcome domain.LocaleOutcome
}

// AuditReport is the outcome of an audit across locales.
type AuditReport struct {
	URL       string                 `json:"url"`
	StartedAt time.Time              `json:"startedAt"`
	Duration  time.Duration          `json:"duration"`
	Outcomes  []domain.LocaleOutcome `json:"outcomes"`
	// Aborted is set when FailFast stopped the loop early.
	Aborted bool `json:"aborted,omitempty"`
}

// Results returns the successful locale results in audit order.
func (r *AuditReport) Results() []domain.AuditResult {
	var out []domain.AuditResult
	for _, o := range r.Outcomes {
		if !o.Failed && o.Result != nil {
			out = append(out, *o.Result)
		}
	}
	return out
}

// Failures returns the failed locale outcomes.
func (r *AuditReport) Failures() []domain.LocaleOutcome {
	var out []domain.LocaleOutcome
	for _, o := range r.Outcomes {
		if o.Failed {
			out = append(out, o)
		}
	}
	return out
}

// TotalIssues sums issues across successful locales.
func (r *AuditReport) TotalIssues() int {
	n := 0
	for _, res := range r.Results() {
		n += res.IssueCount
	}
	return n
}

// HasIssuesAtLeast reports whether any issue meets the severity threshold.
func (r *AuditReport) HasIssuesAtLeast(severity string) bool {
	for _, res := range r.Results() {
		for _, is := range res.Issues {
			if domain.AtLeast(is.Severity, severity) {
				return true
			}
		}
	}
	return false
}

// Run converts the report into a history record.
func (r *AuditReport) Run(id, commit string) domain.AuditRun {
	run := domain.AuditRun{
		ID:         id,
		Timestamp:  r.StartedAt.UTC().Format(time.RFC3339),
		URL:        r.URL,
		CommitHash: commit,
	}
	for _, o := range r.Outcomes {
		s := domain.LocaleSummary{Locale: o.Locale, Failed: o.Failed}
		if o.Result != nil {
			c := o.Result.CountBySeverity()
			s.Issues = o.Result.IssueCount
			s.Errors = c[domain.SeverityError]
			s.Warnings = c[domain.SeverityWarning]
			s.Infos = c[domain.SeverityInfo]
		}
		run.Locales = append(run.Locales, s)
	}
	return run
}

// AuditService drives locale passes against a live page.
type AuditService struct {
	browser  domain.Browser
	config   domain.ProjectConfig
	detector *detect.Detector
	enricher *Enricher
	mapper   *translation.ReverseMapper
}

// NewAuditService creates an AuditService. index and mapper may be nil.
func NewAuditService(browser domain.Browser, cfg domain.ProjectConfig, index *attribution.Index, mapper *translation.ReverseMapper) *AuditService {
	if mapper == nil {
		mapper = translation.NewReverseMapper(nil, nil)
	}
	origins := attribution.NewChain(cfg.Detect.MarkerAttribute, cfg.Detect.Frameworks, cfg.Detect.ComponentDenylist)
	return &AuditService{
		browser: browser,
		config:  cfg,
		detector: detect.New(detect.Options{
			ExcludeTags: cfg.Detect.ExcludeTags,
			Origins:     origins,
		}),
		enricher: NewEnricher(index, mapper, cfg.SourceLocale),
		mapper:   mapper,
	}
}

// Audit runs every requested locale sequentially on a single page. A locale
// that cannot be loaded or snapshotted is reported as failed; the returned
// error is reserved for failures that stop the whole run.
func (s *AuditService) Audit(ctx context.Context, req AuditRequest) (*AuditReport, error) {
	report := &AuditReport{URL: req.URL, StartedAt: time.Now()}

	locales := req.Locales
	if len(locales) == 0 {
		locales = s.config.Locales
	}
	if req.URL == "" {
		return nil, auditerrors.New(auditerrors.CodeConfig, "no url to audit")
	}

	// 1. Open the page shared by every locale pass
	page, err := s.browser.Open(ctx)
	if err != nil {
		return nil, auditerrors.Wrap(err, auditerrors.CodeNavigation, "opening browser page")
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			logger.Debug("closing page", zap.Error(cerr))
		}
	}()

	// 2. Run locales in order
	for i, loc := range locales {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}

		outcome := s.auditLocale(ctx, page, req.URL, loc)
		if outcome.Result != nil && req.Dedupe {
			deduped := domain.Dedupe([]domain.AuditResult{*outcome.Result})
			outcome.Result = &deduped[0]
		}
		report.Outcomes = append(report.Outcomes, outcome)
		record(outcome)

		if req.Progress != nil {
			req.Progress(LocaleProgress{Index: i, Total: len(locales), Outcome: outcome})
		}
		if outcome.Failed && req.FailFast && i < len(locales)-1 {
			report.Aborted = true
			break
		}
	}

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

func (s *AuditService) auditLocale(ctx context.Context, page domain.Page, base, loc string) domain.LocaleOutcome {
	start := time.Now()
	target := s.config.LocaleURL(base, loc)
	log := logger.With(zap.String("locale", loc), zap.String("url", target))

	fail := func(err error) domain.LocaleOutcome {
		if ae, ok := err.(*auditerrors.AuditError); ok {
			ae.WithContext(auditerrors.CtxLocale, loc).WithContext(auditerrors.CtxURL, target)
		}
		log.Warn("locale pass failed", zap.Error(err))
		return domain.LocaleOutcome{Locale: loc, Failed: true, Error: err.Error()}
	}

	plan := locale.PlanFor(loc, locale.PlanOptions{
		SourceLocale:    s.config.SourceLocale,
		ServerRendered:  s.config.IsServerRendered(loc),
		HasTranslations: s.mapper.HasLocale(loc),
		Factor:          s.config.FactorFor(loc),
	})
	log.Debug("locale plan", zap.String("transform", string(plan.Kind)), zap.String("reason", plan.Reason))

	// 1. Navigate
	if err := page.Navigate(ctx, target, s.config.NavigationTimeout()); err != nil {
		return fail(auditerrors.Wrap(err, auditerrors.CodeNavigation, "navigating"))
	}

	result := &domain.AuditResult{URL: target, Locale: loc, Transform: plan.Kind}

	// 2. Transform, recovering locally
	if plan.Kind != domain.TransformNone {
		applied, err := applyPlan(ctx, page, plan)
		if err != nil {
			log.Warn("transformation failed, auditing untransformed page", zap.Error(err))
			metrics.TransformFailuresTotal.WithLabelValues(loc).Inc()
			result.Transform = domain.TransformNone
			result.TransformError = err.Error()
		} else {
			log.Debug("transformation applied", zap.Int("applied", applied.Applied), zap.Int("skipped", applied.Skipped))
		}

		if err := page.Wait(ctx, s.config.SettleDelay()); err != nil {
			return fail(auditerrors.Wrap(err, auditerrors.CodeNavigation, "waiting for layout to settle"))
		}
	}

	// 3. Snapshot
	var body *domain.Node
	if err := page.Evaluate(ctx, pagescript.Snapshot, s.snapshotArgs(), &body); err != nil {
		return fail(auditerrors.Wrap(err, auditerrors.CodeSnapshot, "snapshotting layout"))
	}
	if body == nil {
		return fail(auditerrors.New(auditerrors.CodeSnapshot, "page has no body"))
	}

	// 4. Detect and enrich
	issues := s.detector.Detect(body, loc)
	for i := range issues {
		s.enricher.Enrich(&issues[i], result.Transform)
	}
	if issues == nil {
		issues = []domain.OverflowIssue{}
	}

	result.Issues = issues
	result.IssueCount = len(issues)
	result.Timestamp = time.Now().UTC()
	result.DurationMs = time.Since(start).Milliseconds()

	metrics.AuditDuration.WithLabelValues(loc).Observe(time.Since(start).Seconds())
	log.Info("locale audited",
		zap.Int("issues", result.IssueCount),
		zap.String("transform", string(result.Transform)),
		zap.Duration("duration", time.Since(start)),
	)
	return domain.LocaleOutcome{Locale: loc, Result: result}
}

func (s *AuditService) snapshotArgs() domain.SnapshotArgs {
	attrs := []string{"id", "class", "data-testid", "data-component"}
	if m := s.config.Detect.MarkerAttribute; m != "" {
		attrs = append(attrs, m)
	}
	return domain.SnapshotArgs{
		Attributes: attrs,
		PruneTags:  s.config.Detect.ExcludeTags,
		Frameworks: s.config.Detect.Frameworks,
	}
}

func record(o domain.LocaleOutcome) {
	if o.Failed || o.Result == nil {
		metrics.LocaleFailuresTotal.WithLabelValues(o.Locale).Inc()
		return
	}
	for _, is := range o.Result.Issues {
		metrics.IssuesTotal.WithLabelValues(o.Locale, is.Severity).Inc()
		kind := string(is.Attribution)
		if kind == "" {
			kind = "none"
		}
		metrics.AttributionTotal.WithLabelValues(kind).Inc()
	}
}

// String describes the outcome for logs and plain output.
func (p LocaleProgress) String() string {
	if p.Outcome.Failed {
		return fmt.Sprintf("%s failed: %s", p.Outcome.Locale, p.Outcome.Error)
	}
	return fmt.Sprintf("%s: %d issues", p.Outcome.Locale, p.Outcome.Result.IssueCount)
}
