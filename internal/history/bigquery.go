package history

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

// BigQuerySink is the concrete Sink backed by a BigQuery table. It holds
// a shared client to avoid creating a new connection per operation.
type BigQuerySink struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewBigQuerySink creates a sink writing to project.dataset.table.
// Application Default Credentials are assumed.
func NewBigQuerySink(ctx context.Context, projectID, datasetID, tableID string) (*BigQuerySink, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQuerySink: creating client: %w", err)
	}
	return &BigQuerySink{client: client, dataset: datasetID, table: tableID}, nil
}

// Close closes the BigQuery client connection.
func (s *BigQuerySink) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// InsertResults implements Sink using the streaming inserter.
func (s *BigQuerySink) InsertResults(ctx context.Context, runID string, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}

	rows := make([]*PredictionRow, len(results))
	for i, res := range results {
		rows[i] = &PredictionRow{
			PredictionID: res.ID,
			RunID:        runID,
			Label:        string(res.Outcome.Label),
			Probability:  res.Outcome.Probability,
			FraudScore:   res.Outcome.FraudScore,
			Amount:       res.Record.Amount(),
			ProductCode:  res.Record.Token(schema.FieldProductCD),
			CardType:     res.Record.Token(schema.FieldCard4),
			SubmittedTS:  res.SubmittedAt,
		}
	}

	inserter := s.client.Dataset(s.dataset).Table(s.table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertResults: inserting rows: %w", err)
	}
	return nil
}

// RecentPredictions implements Sink.
func (s *BigQuerySink) RecentPredictions(ctx context.Context, limit int) ([]*PredictionRow, error) {
	if limit <= 0 {
		limit = 50
	}

	q := s.client.Query(fmt.Sprintf(`
		SELECT
			prediction_id, run_id, label, probability, fraud_score,
			amount, product_code, card_type, submitted_ts
		FROM %s.%s
		ORDER BY submitted_ts DESC
		LIMIT @limit
	`, s.dataset, s.table))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("RecentPredictions: running query: %w", err)
	}

	var rows []*PredictionRow
	for {
		var row PredictionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("RecentPredictions: reading row: %w", err)
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

var _ Sink = (*BigQuerySink)(nil)
