package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locaudit/locaudit/internal/adapters/outbound/history"
	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show previous audit runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(pathArg(args, 0))
			if err != nil {
				return err
			}
			runs, err := history.New().Load(p.path)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}

			if jsonOutput {
				if runs == nil {
					runs = []domain.AuditRun{}
				}
				return renderJSON(cmd, runs)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(runs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output runs as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show only the most recent runs (0 for all)")
	return cmd
}
