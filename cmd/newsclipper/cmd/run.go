package cmd

import (
	"github.com/spf13/cobra"

	"NewsClipper/internal/app"
	"NewsClipper/internal/config"
	"NewsClipper/internal/logging"
)

var (
	runDays int
	runRSS  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every configured category once and write the reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if runDays > 0 {
			cfg.Days = runDays
		}
		if runRSS {
			cfg.RSS.Enabled = true
		}

		logger := logging.New(cfg.Logging.Level)

		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("application setup failed", "error", err)
			return err
		}

		if err := application.Run(cmd.Context()); err != nil {
			logger.Error("application stopped", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runDays, "days", 0, "recency window in days (overrides config)")
	runCmd.Flags().BoolVar(&runRSS, "rss", false, "also pull Google News RSS feeds")
	rootCmd.AddCommand(runCmd)
}
