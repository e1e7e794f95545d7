package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/ingest"
	"github.com/fraudlens/fraud-console/internal/reconcile"
	"github.com/fraudlens/fraud-console/internal/scoring"
	"github.com/fraudlens/fraud-console/internal/validate"
)

func newPredictCmd() *cobra.Command {
	var (
		recordPath string
		fields     []string
		skipChecks bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a single transaction record",
		Long: `Score a single transaction record against the remote service.

The record comes either from a JSON file (--record) or from repeated
--field name=value pairs, which are coerced exactly like CSV cells.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rec, err := buildRecord(recordPath, fields)
			if err != nil {
				return err
			}

			if !skipChecks {
				if violations := validate.Check(rec); !violations.OK() {
					for _, v := range violations {
						fmt.Fprintln(os.Stderr, "validation:", v)
					}
					return fmt.Errorf("record failed %d validation check(s)", len(violations))
				}
			}

			scorer := scoring.NewHTTPClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, log)
			outcome, err := scorer.PredictOne(cmd.Context(), rec)
			if err != nil {
				return err
			}

			result := reconcile.One(rec, outcome, time.Now())
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&recordPath, "record", "", "path to a JSON transaction record")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field as name=value (repeatable)")
	cmd.Flags().BoolVar(&skipChecks, "skip-validation", false, "submit without local validation")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var (
		recordPath string
		fields     []string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a transaction record without submitting it",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := buildRecord(recordPath, fields)
			if err != nil {
				return err
			}

			violations := validate.Check(rec)
			if violations.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), "record is valid")
				return nil
			}
			for _, v := range violations {
				fmt.Fprintln(cmd.OutOrStdout(), "-", v)
			}
			return fmt.Errorf("record failed %d validation check(s)", len(violations))
		},
	}

	cmd.Flags().StringVar(&recordPath, "record", "", "path to a JSON transaction record")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field as name=value (repeatable)")
	return cmd
}

// buildRecord assembles a record from a JSON file, --field pairs, or
// both (pairs win). Field values go through the same total coercion as
// CSV cells.
func buildRecord(recordPath string, fields []string) (domain.Record, error) {
	rec := domain.Record{}

	if recordPath != "" {
		data, err := os.ReadFile(recordPath)
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
	}

	if len(fields) > 0 {
		raw := make(domain.RawRow, len(fields))
		for _, pair := range fields {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid --field %q, want name=value", pair)
			}
			raw[name] = value
		}
		for name, value := range ingest.Coerce(raw) {
			rec[name] = value
		}
	}

	if len(rec) == 0 {
		return nil, fmt.Errorf("no record given: use --record or --field")
	}
	return rec, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
