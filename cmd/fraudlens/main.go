// Command fraudlens is the operator CLI for the fraud console: score a
// single transaction, run a CSV batch end to end, or query the service's
// dashboard and assistant.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fraudlens/fraud-console/internal/config"
	"github.com/fraudlens/fraud-console/internal/logger"
)

var (
	configPath string
	scoringURL string

	log zerolog.Logger
)

func main() {
	_ = godotenv.Load()
	log = logger.New()

	rootCmd := &cobra.Command{
		Use:           "fraudlens",
		Short:         "Submit transactions to the fraud-scoring service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&scoringURL, "scoring-url", "", "scoring service base URL (overrides config)")

	rootCmd.AddCommand(
		newPredictCmd(),
		newBatchCmd(),
		newValidateCmd(),
		newStatsCmd(),
		newChatCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if scoringURL != "" {
		cfg.Scoring.BaseURL = scoringURL
	}
	return cfg, nil
}
