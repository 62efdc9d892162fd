package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/locaudit/locaudit/internal/adapters/outbound/tui"
)

// confirm asks a yes/no question. Replaced in tests.
var confirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

func newTranslateCmd() *cobra.Command {
	var (
		yes        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "translate [path]",
		Short: "Generate locale files with the configured translation provider",
		Long: "Run provider.command in the project directory. The provider reads locales/en.json and writes " +
			"locales/<locale>.json for every configured locale.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(pathArg(args, 0))
			if err != nil {
				return err
			}
			if p.cfg.Provider.Command == "" {
				return fmt.Errorf("no translation provider configured: set provider.command in .locaudit.yaml")
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Run %q to (re)write locale files for %v?", p.cfg.Provider.Command, p.cfg.Locales))
				if err != nil {
					return fmt.Errorf("confirmation cancelled: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := newTranslateService().Run(ctx, p.path, p.cfg)
			if err != nil {
				return fmt.Errorf("translate failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderTranslate(res))
			}
			if !res.Success {
				return fmt.Errorf("translation provider exited with code %d", res.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the provider result as JSON")
	return cmd
}
