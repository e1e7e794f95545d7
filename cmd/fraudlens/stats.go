package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraud-console/internal/stats"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics from the scoring service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := stats.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout)
			dashboard, err := client.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total transactions: %d\n", dashboard.TotalTransactions)
			fmt.Fprintf(out, "fraud:              %d\n", dashboard.FraudCount)
			fmt.Fprintf(out, "legitimate:         %d\n", dashboard.LegitimateCount)
			fmt.Fprintf(out, "fraud rate:         %.2f%%\n", dashboard.FraudRate*100)
			if dashboard.AvgFraudScore > 0 {
				fmt.Fprintf(out, "avg fraud score:    %.4f\n", dashboard.AvgFraudScore)
			}
			return nil
		},
	}
}
