// Package history persists reconciled results to BigQuery so past
// analyses survive process restarts. The sink is optional; the pipeline
// itself never depends on it.
package history

import (
	"context"
	"time"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// PredictionRow is one scored transaction as stored in the predictions
// table.
type PredictionRow struct {
	PredictionID string    `bigquery:"prediction_id"`
	RunID        string    `bigquery:"run_id"`
	Label        string    `bigquery:"label"`
	Probability  float64   `bigquery:"probability"`
	FraudScore   float64   `bigquery:"fraud_score"`
	Amount       float64   `bigquery:"amount"`
	ProductCode  string    `bigquery:"product_code"`
	CardType     string    `bigquery:"card_type"`
	SubmittedTS  time.Time `bigquery:"submitted_ts"`
}

// Sink stores scored results and serves back recent ones.
type Sink interface {
	// InsertResults writes one row per reconciled result. runID groups
	// the rows of a single batch analysis; single submissions pass their
	// result id.
	InsertResults(ctx context.Context, runID string, results []domain.Result) error

	// RecentPredictions returns up to limit rows, newest first.
	RecentPredictions(ctx context.Context, limit int) ([]*PredictionRow, error)

	// Close releases the underlying client.
	Close() error
}

// Discard is a Sink that stores nothing, used when history is disabled.
type Discard struct{}

func (Discard) InsertResults(context.Context, string, []domain.Result) error { return nil }
func (Discard) RecentPredictions(context.Context, int) ([]*PredictionRow, error) {
	return nil, nil
}
func (Discard) Close() error { return nil }
