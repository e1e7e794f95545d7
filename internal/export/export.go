// Package export flattens reconciled results back into CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

// Header is the fixed column order of an exported results file.
var Header = []string{
	"transaction_id",
	"amount",
	"product_code",
	"card_type",
	"fraud_label",
	"fraud_probability",
	"fraud_score",
	"timestamp",
}

// Filename returns the download name for an export produced at now,
// e.g. fraud_analysis_2026-09-01.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("fraud_analysis_%s.csv", now.Format("2006-01-02"))
}

// Write emits one row per result in input order. It is pure and total;
// callers should treat zero results as a precondition failure before
// invoking it rather than expecting an error here.
func Write(w io.Writer, results []domain.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, res := range results {
		row := []string{
			res.ID,
			formatFloat(res.Record.Amount()),
			res.Record.Token(schema.FieldProductCD),
			res.Record.Token(schema.FieldCard4),
			string(res.Outcome.Label),
			formatFloat(res.Outcome.Probability),
			formatFloat(res.Outcome.FraudScore),
			res.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
