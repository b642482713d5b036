package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/homeset/internal/version"
	"github.com/arthur-debert/homeset/pkg/logging"
)

var (
	verbosity  int
	dryRun     bool
	formatFlag string

	// Config overrides
	sourceFlag string
	homeFlag   string
	userFlag   string

	rootCmd = &cobra.Command{
		Use:   "homeset",
		Short: rootShort,
		Long:  rootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "auto", "Output format (auto, term, text, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Dotfiles source root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Target home directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Target user name (overrides config)")

	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(genconfigCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: versionShort,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "homeset version %s\n", version.Version)
		fmt.Fprintf(out, "  commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  built:  %s\n", version.Date)
	},
}
