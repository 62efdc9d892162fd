package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/locaudit/locaudit/internal/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// settings are runtime options resolved from flags, then LOCAUDIT_* env vars.
type settings struct {
	LogLevel   string
	LogFormat  string
	ChromePath string
	Headless   bool
	NoSandbox  bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	s := &settings{}

	cmd := &cobra.Command{
		Use:   "locaudit",
		Short: "Find text that breaks your layout in other languages",
		Long: "locaudit loads a page under each locale, pseudo-localizes or mirrors it, " +
			"and reports every element whose text overflows its box, attributed back to source and English text.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			*s = settings{
				LogLevel:   v.GetString("log-level"),
				LogFormat:  v.GetString("log-format"),
				ChromePath: v.GetString("chrome-path"),
				Headless:   v.GetBool("headless"),
				NoSandbox:  v.GetBool("no-sandbox"),
			}
			return logger.Init(s.LogLevel, s.LogFormat)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")
	pf.String("chrome-path", "", "Chrome executable (defaults to auto-discovery)")
	pf.Bool("headless", true, "Run Chrome headless")
	pf.Bool("no-sandbox", false, "Disable the Chrome sandbox (containers running as root)")
	bindSettings(v, pf)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAuditCmd(s))
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newReverseCmd())
	cmd.AddCommand(newTranslateCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newWatchCmd(s))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(s))
	return cmd
}

func bindSettings(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix("locaudit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
