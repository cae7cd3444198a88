package commands

import (
	"os"

	"github.com/churnlens/churn-api/libs/go/logger"
	"github.com/spf13/cobra"
)

// Execute runs churnctl and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "churnctl",
		Short:        "Offline tooling for churn model artifacts",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := "warn"
			if debug {
				level = "debug"
			}
			logger.InitLoggerWithConfig(logger.LoggerConfig{
				Level: level,
				Stage: "cli",
			})
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")

	cmd.AddCommand(predictCmd())
	cmd.AddCommand(modelCmd())
	return cmd
}
