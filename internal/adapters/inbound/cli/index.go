package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/domain"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build and query the static source index",
		Long:  "The source index maps rendered text to the files and lines that produce it: t('key') calls, JSX text and string literals.",
	}
	cmd.AddCommand(newIndexBuildCmd())
	cmd.AddCommand(newIndexLookupCmd())
	cmd.AddCommand(newIndexClearCmd())
	return cmd
}

func newIndexBuildCmd() *cobra.Command {
	var (
		jsonOutput bool
		fresh      bool
	)

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Scan sources and rebuild the index cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(pathArg(args, 0))
			if err != nil {
				return err
			}

			svc := newIndexService()
			if fresh {
				if err := svc.Invalidate(p.path); err != nil {
					return fmt.Errorf("clearing index cache: %w", err)
				}
			}
			_, stats, err := svc.Build(cmd.Context(), p.path, p.cfg)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, stats)
			}
			root := p.cfg.Scan.Root
			if !filepath.IsAbs(root) {
				root = filepath.Join(p.path, root)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderIndexSummary(tui.IndexSummary{
				Root:      root,
				Files:     stats.Files,
				CacheHits: stats.CacheHits,
				Unread:    stats.Unread,
				Entries:   stats.Entries,
				Duration:  stats.Duration,
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output index statistics as JSON")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the cache and re-read every file")
	return cmd
}

func newIndexLookupCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Find where a rendered string comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(projectPath)
			if err != nil {
				return err
			}
			ix, _, err := newIndexService().Build(cmd.Context(), p.path, p.cfg)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			// Best hit per tier, highest confidence first.
			var hits []domain.SourceLocation
			for _, tier := range domain.Priorities {
				if loc, ok := ix.LookupTier(tier, args[0]); ok {
					hits = append(hits, *loc)
				}
			}

			if jsonOutput {
				if hits == nil {
					hits = []domain.SourceLocation{}
				}
				return renderJSON(cmd, hits)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLookup(args[0], hits))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", ".", "Project directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output matches as JSON")
	return cmd
}

func newIndexClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [path]",
		Short: "Delete the index cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(pathArg(args, 0))
			if err != nil {
				return err
			}
			if err := newIndexService().Invalidate(p.path); err != nil {
				return fmt.Errorf("clearing index cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Index cache cleared")
			return nil
		},
	}
}
