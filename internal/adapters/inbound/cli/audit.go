package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/adapters/outbound/gitinfo"
	"github.com/locaudit/locaudit/internal/adapters/outbound/history"
	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/application"
	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

type auditFlags struct {
	project    string
	locales    []string
	jsonOutput bool
	ciMode     bool
	failOn     string
	failFast   bool
	noDedupe   bool
	noHistory  bool
	noProgress bool
	matrix     bool
}

func newAuditCmd(s *settings) *cobra.Command {
	var f auditFlags

	cmd := &cobra.Command{
		Use:   "audit [url]",
		Short: "Audit a page for translated text that overflows",
		Long: "Load the page once per locale, apply a pseudo-locale or RTL transformation where the app does not " +
			"render the locale itself, and report every overflowing element with its source location.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(f.project)
			if err != nil {
				return err
			}

			url := p.cfg.URL
			if len(args) > 0 {
				url = args[0]
			}
			if url == "" {
				return fmt.Errorf("no url given (pass one or set url in .locaudit.yaml)")
			}
			failOn := f.failOn
			if failOn == "" {
				failOn = p.cfg.Report.FailOn
			}
			if failOn != "" && !domain.IsValidSeverity(failOn) {
				return fmt.Errorf("unknown --fail-on %q (valid: error, warning, info)", failOn)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			locales := f.locales
			if len(locales) == 0 {
				locales = p.cfg.Locales
			}

			b := newBrowser(s, p.cfg)
			defer b.Close()

			req := application.AuditRequest{
				URL:      url,
				Locales:  locales,
				FailFast: f.failFast,
				Dedupe:   p.cfg.Report.Dedupe && !f.noDedupe,
			}
			report, err := runWithProgress(ctx, cmd.ErrOrStderr(), !f.noProgress && !f.jsonOutput, req,
				application.NewAuditService(b, p.cfg, p.index(ctx), p.mapper()))
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			if !f.noHistory {
				saveRun(p.path, report)
			}

			if f.jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report.URL, report.Outcomes))
				if f.matrix {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderMatrix(report.Outcomes))
				}
			}

			if f.ciMode {
				return ciGate(report, failOn)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.project, "project", "p", ".", "Project directory holding .locaudit.yaml and sources")
	fl.StringSliceVarP(&f.locales, "locales", "l", nil, "Locales to audit (defaults to config locales)")
	fl.BoolVar(&f.jsonOutput, "json", false, "Output the report as JSON")
	fl.BoolVar(&f.ciMode, "ci", false, "CI mode: exit 1 on issues at or above --fail-on, or on a failed locale")
	fl.StringVar(&f.failOn, "fail-on", "", "Lowest severity that fails CI mode (defaults to report.fail_on)")
	fl.BoolVar(&f.failFast, "fail-fast", false, "Stop after the first locale that fails to load")
	fl.BoolVar(&f.noDedupe, "no-dedupe", false, "Report every overflowing element, even when they share a source line")
	fl.BoolVar(&f.noHistory, "no-history", false, "Do not record this run in .locaudit/history")
	fl.BoolVar(&f.noProgress, "no-progress", false, "Hide the progress bar")
	fl.BoolVar(&f.matrix, "matrix", false, "Append a per-locale summary table")

	return cmd
}

func runWithProgress(ctx context.Context, w io.Writer, show bool, req application.AuditRequest, svc *application.AuditService) (*application.AuditReport, error) {
	total := len(req.Locales)
	if !show || total == 0 {
		req.Progress = logProgress
		return svc.Audit(ctx, req)
	}

	progress := mpb.NewWithContext(ctx, mpb.WithOutput(w), mpb.WithWidth(40))
	bar := progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("auditing", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d/%d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5})),
	)
	req.Progress = func(p application.LocaleProgress) {
		logProgress(p)
		bar.Increment()
	}

	report, err := svc.Audit(ctx, req)
	if !bar.Completed() {
		bar.Abort(false)
	}
	progress.Wait()
	return report, err
}

func logProgress(p application.LocaleProgress) {
	logger.Info("locale audited",
		zap.Int("index", p.Index+1),
		zap.Int("total", p.Total),
		zap.String("result", p.String()),
	)
}

func saveRun(projectPath string, report *application.AuditReport) {
	commitHash, err := gitinfo.New().CommitHash(projectPath)
	if err != nil {
		commitHash = ""
	}
	if err := history.New().Save(projectPath, report.Run(uuid.NewString(), commitHash)); err != nil {
		logger.Warn("saving audit history", zap.Error(err))
	}
}

func ciGate(report *application.AuditReport, failOn string) error {
	var reasons []string
	if failed := report.Failures(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, o := range failed {
			names = append(names, o.Locale)
		}
		reasons = append(reasons, fmt.Sprintf("%d locales failed to load (%s)", len(failed), strings.Join(names, ", ")))
	}
	if failOn != "" && report.HasIssuesAtLeast(failOn) {
		reasons = append(reasons, fmt.Sprintf("found issues at or above %s", failOn))
	}
	if len(reasons) > 0 {
		return fmt.Errorf("ci check failed: %s", strings.Join(reasons, "; "))
	}
	return nil
}
