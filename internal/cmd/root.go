// Package cmd defines the swastha command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/swasthaai/swastha-cli/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "swastha",
	Short: "SwasthaAI terminal client",
	Long: `swastha is the terminal client for the SwasthaAI healthcare platform.
It signs you in with OTP/PIN flows, manages medication reminders (MedAlert),
and talks to the AI health assistant, against the platform's REST backends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	verboseFlag bool
	configFlag  string
	plainFlag   bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default is $HOME/.swastha/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain-session", false, "store the session unencrypted (testing only)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			log.SetDefaultLogger(log.Verbose())
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
