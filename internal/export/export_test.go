package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "fraud_analysis_2026-09-01.csv", Filename(now))
}

func TestWrite(t *testing.T) {
	submittedAt := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	results := []domain.Result{
		{
			ID: "id-1",
			Record: domain.Record{
				schema.FieldTransactionAmt: 100.5,
				schema.FieldProductCD:      "W",
				schema.FieldCard4:          "visa",
			},
			Outcome: domain.Outcome{
				Label:       domain.LabelFraud,
				Probability: 0.91,
				FraudScore:  0.87,
			},
			SubmittedAt: submittedAt,
			Status:      domain.StatusSuccess,
		},
		{
			ID: "id-2",
			Record: domain.Record{
				schema.FieldTransactionAmt: 20.0,
				schema.FieldProductCD:      "C",
			},
			Outcome: domain.Outcome{
				Label:       domain.LabelLegitimate,
				Probability: 0.05,
				FraudScore:  0.05,
			},
			SubmittedAt: submittedAt,
			Status:      domain.StatusSuccess,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"id-1", "100.5", "W", "visa", "fraud", "0.91", "0.87", "2026-09-01T12:30:00Z",
	}, rows[1])

	// Missing card type exports as an empty cell, not an error.
	assert.Equal(t, []string{
		"id-2", "20", "C", "", "legitimate", "0.05", "0.05", "2026-09-01T12:30:00Z",
	}, rows[2])
}

func TestWriteRowOrderMatchesResultOrder(t *testing.T) {
	submittedAt := time.Now()
	results := []domain.Result{
		{ID: "first", SubmittedAt: submittedAt},
		{ID: "second", SubmittedAt: submittedAt},
		{ID: "third", SubmittedAt: submittedAt},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "first", rows[1][0])
	assert.Equal(t, "second", rows[2][0])
	assert.Equal(t, "third", rows[3][0])
}

func TestWriteEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}
