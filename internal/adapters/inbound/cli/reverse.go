package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
	"github.com/locaudit/locaudit/internal/application"
)

func newReverseCmd() *cobra.Command {
	var (
		projectPath string
		hint        string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "reverse <text>",
		Short: "Map translated or pseudo-localized text back to its English source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(projectPath)
			if err != nil {
				return err
			}
			text := args[0]

			entry, found := application.ReverseLookup(p.mapper(), text, hint)
			if jsonOutput {
				if !found {
					return renderJSON(cmd, map[string]any{"found": false})
				}
				return renderJSON(cmd, entry)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReverse(text, entry))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", ".", "Project directory")
	cmd.Flags().StringVar(&hint, "locale", "", "Locale to search first")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the entry as JSON")
	return cmd
}
