// Package reconcile pairs scored outcomes with the input records they
// came from. Pairing is purely positional: result[i] joins records[i]
// with outcomes[i]. No key-based matching is attempted, so correctness
// depends entirely on the scoring orchestrator's order/length contract.
// If the remote service ever reordered or dropped a prediction without
// that contract being enforced, reconciliation would silently mispair —
// which is why Pair still refuses mismatched lengths instead of assuming
// the caller already checked.
package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// Pair zips the order-aligned batch inputs with the order-aligned
// outcomes into reconciled results. rawRows may be nil (single-record
// submissions have no raw row); when present it must be the same length
// as records.
func Pair(records []domain.Record, rawRows []domain.RawRow, outcomes []domain.Outcome, submittedAt time.Time) ([]domain.Result, error) {
	if len(outcomes) != len(records) {
		return nil, fmt.Errorf("reconcile: %d outcomes for %d records", len(outcomes), len(records))
	}
	if rawRows != nil && len(rawRows) != len(records) {
		return nil, fmt.Errorf("reconcile: %d raw rows for %d records", len(rawRows), len(records))
	}

	results := make([]domain.Result, len(records))
	for i := range records {
		results[i] = domain.Result{
			ID:          uuid.NewString(),
			Record:      records[i],
			Outcome:     outcomes[i],
			SubmittedAt: submittedAt,
			Status:      domain.StatusSuccess,
		}
		if rawRows != nil {
			results[i].Raw = rawRows[i]
		}
	}
	return results, nil
}

// One reconciles a single submitted record with its single outcome.
func One(rec domain.Record, outcome domain.Outcome, submittedAt time.Time) domain.Result {
	return domain.Result{
		ID:          uuid.NewString(),
		Record:      rec,
		Outcome:     outcome,
		SubmittedAt: submittedAt,
		Status:      domain.StatusSuccess,
	}
}
