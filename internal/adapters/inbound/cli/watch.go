package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/adapters/outbound/watcher"
	"github.com/locaudit/locaudit/internal/application"
	"github.com/locaudit/locaudit/internal/pkg/logger"
)

// watchExtensions are watched in addition to scan.extensions.
var watchExtensions = []string{".json", ".css", ".scss"}

func newWatchCmd(s *settings) *cobra.Command {
	var (
		projectPath string
		locales     []string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch [url]",
		Short: "Re-audit whenever sources or locale files change",
		Long: "Audit once, then again after every batch of file changes. Each cycle reports the issues " +
			"that are new since the last change.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(projectPath)
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

			exts := append(append([]string{}, p.cfg.Scan.Extensions...), watchExtensions...)
			w, err := watcher.New(p.cfg.WatchDebounce(), exts, p.cfg.Watch.Ignore)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if metricsAddr != "" {
				srv := serveMetrics(metricsAddr)
				defer shutdown(srv)
			}

			b := newBrowser(s, p.cfg)
			defer b.Close()

			svc := application.NewWatchService(b, w, newIndexService(), newTranslateService(), p.path, p.cfg)
			req := application.AuditRequest{URL: url, Locales: locales, Dedupe: p.cfg.Report.Dedupe}

			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", p.path)
			return svc.Run(ctx, req, func(c application.WatchCycle) {
				printCycle(cmd.OutOrStdout(), c)
			})
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", ".", "Project directory to watch")
	cmd.Flags().StringSliceVarP(&locales, "locales", "l", nil, "Locales to audit (defaults to config locales)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
	return cmd
}

func printCycle(w io.Writer, c application.WatchCycle) {
	if c.Err != nil {
		fmt.Fprintf(w, "cycle %d failed: %v\n", c.Number, c.Err)
		return
	}
	if c.Number > 0 {
		fmt.Fprintf(w, "\ncycle %d: %d files changed\n", c.Number, len(c.Changed))
	}
	fmt.Fprint(w, tui.RenderReport(c.Report.URL, c.Report.Outcomes))
	fmt.Fprintf(w, "  %d new issues\n", len(c.New))
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
