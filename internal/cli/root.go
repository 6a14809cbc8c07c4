package cli

import (
	"github.com/dotnot-labs/regui/internal/branding"
	"github.com/dotnot-labs/regui/internal/config"
	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	debug bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` renders the catalog of a pull-through registry proxy
deployment as an HTML listing, serves it as a page, and manages the proxy
configuration file the deployment is built from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logging.SetOutput(cmd.ErrOrStderr())
		logging.SetDebug(debug || config.GetBool(config.KeyDebug))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log fetch and render diagnostics to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
