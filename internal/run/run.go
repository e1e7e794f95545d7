// Package run models one batch pipeline run as an explicit, immutable
// state object. Each file upload produces a fresh Run; analysis produces
// a new Run value with results attached rather than mutating shared
// fields in place, so the decode, submit and reconcile stages can never
// observe a half-updated state.
package run

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/ingest"
)

// Run is the state of one uploaded batch: the ordered records and raw
// rows from ingestion, and, once analyzed, the reconciled results.
type Run struct {
	ID         string
	Filename   string
	Batch      *ingest.Batch
	Results    []domain.Result
	CreatedAt  time.Time
	AnalyzedAt time.Time
}

// New creates a run for a freshly ingested file.
func New(filename string, batch *ingest.Batch) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Filename:  filename,
		Batch:     batch,
		CreatedAt: time.Now(),
	}
}

// Analyzed reports whether results have been attached.
func (r *Run) Analyzed() bool { return !r.AnalyzedAt.IsZero() }

// WithResults returns a copy of the run carrying the reconciled results.
// The receiver is left untouched.
func (r *Run) WithResults(results []domain.Result, analyzedAt time.Time) *Run {
	out := *r
	out.Results = results
	out.AnalyzedAt = analyzedAt
	return &out
}

// Store holds runs for the lifetime of the process. Runs are replaced
// wholesale, never mutated in place.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewStore creates an empty run store.
func NewStore() *Store {
	return &Store{runs: make(map[string]*Run)}
}

// Put stores or replaces a run.
func (s *Store) Put(r *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
}

// Get returns the run with the given id, or false.
func (s *Store) Get(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}

// Delete removes a run.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
}
