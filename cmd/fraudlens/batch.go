package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/export"
	"github.com/fraudlens/fraud-console/internal/ingest"
	"github.com/fraudlens/fraud-console/internal/reconcile"
	"github.com/fraudlens/fraud-console/internal/scoring"
)

func newBatchCmd() *cobra.Command {
	var (
		outPath string
		useFile bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Score every row of a CSV file and export the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open batch file: %w", err)
			}
			defer f.Close()

			batch, err := ingest.ReadBatch(f)
			if err != nil {
				return err
			}
			if batch.Len() == 0 {
				return fmt.Errorf("%s has no data rows", path)
			}
			log.Info().Int("rows", batch.Len()).Str("file", path).Msg("batch ingested")

			scorer := scoring.NewHTTPClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, log)
			submittedAt := time.Now()

			var outcomes []domain.Outcome
			if useFile {
				// Let the service parse the raw file itself; predictions
				// stay order-aligned with the file's data rows.
				raw, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("reopen batch file: %w", err)
				}
				defer raw.Close()

				predictions, err := scorer.PredictFile(cmd.Context(), path, raw)
				if err != nil {
					return err
				}
				if len(predictions) != batch.Len() {
					return fmt.Errorf("service returned %d predictions for %d rows",
						len(predictions), batch.Len())
				}
				outcomes = make([]domain.Outcome, len(predictions))
				for i, p := range predictions {
					outcomes[i] = p.Outcome
				}
			} else {
				outcomes, err = scorer.PredictBatch(cmd.Context(), batch.Records)
				if err != nil {
					return err
				}
			}

			results, err := reconcile.Pair(batch.Records, batch.RawRows, outcomes, submittedAt)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = export.Filename(submittedAt)
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer out.Close()

			if err := export.Write(out, results); err != nil {
				return err
			}

			fraud := 0
			for _, res := range results {
				if res.Outcome.Label == domain.LabelFraud {
					fraud++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d transactions scored, %d flagged as fraud\n", len(results), fraud)
			fmt.Fprintf(cmd.OutOrStdout(), "results written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "export CSV path (default fraud_analysis_<date>.csv)")
	cmd.Flags().BoolVar(&useFile, "upload", false, "upload the raw CSV instead of parsed records")
	return cmd
}
