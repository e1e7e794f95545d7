package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fraudlens/fraud-console/internal/jobs"
)

// Store is an in-memory implementation of jobs.JobStore. Data is lost on
// restart, which matches the session-scoped lifetime of batch runs.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.AnalyzeBatchJob
}

// NewStore creates a new in-memory job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.AnalyzeBatchJob),
	}
}

// SaveJob implements jobs.JobStore.
func (s *Store) SaveJob(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// GetJob implements jobs.JobStore.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.AnalyzeBatchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ActiveJobForRun implements jobs.JobStore.
func (s *Store) ActiveJobForRun(ctx context.Context, runID string) (*jobs.AnalyzeBatchJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.RunID != runID {
			continue
		}
		if job.Status == jobs.JobStatusPending || job.Status == jobs.JobStatusRunning {
			jobCopy := *job
			return &jobCopy, true
		}
	}
	return nil, false
}

var _ jobs.JobStore = (*Store)(nil)
