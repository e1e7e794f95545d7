// Package scoring submits transaction records to the remote fraud-scoring
// service and normalizes its heterogeneous response shapes into one result
// type. The one hard contract it enforces: submission order of records
// equals return order of predictions, and response length equals request
// length. A response that breaks either is failed here rather than passed
// to the reconciler, where it would silently mispair predictions.
package scoring

import (
	"context"
	"io"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// FilePrediction is one prediction from the file-based endpoint, which may
// echo the parsed input row alongside the outcome.
type FilePrediction struct {
	Outcome domain.Outcome
	Input   domain.Record
}

// Client is the orchestrator's view of the scoring service.
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go Client
type Client interface {
	// PredictOne scores a single record and returns exactly one outcome.
	PredictOne(ctx context.Context, rec domain.Record) (domain.Outcome, error)

	// PredictBatch scores the full batch and returns a same-length,
	// order-aligned outcome slice. A length mismatch is a *Error; no
	// partial-success mode is exposed.
	PredictBatch(ctx context.Context, records []domain.Record) ([]domain.Outcome, error)

	// PredictFile uploads a raw CSV as multipart form data and returns
	// predictions order-aligned with the file's data rows.
	PredictFile(ctx context.Context, filename string, file io.Reader) ([]FilePrediction, error)
}
