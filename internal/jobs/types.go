// Package jobs defines the asynchronous analyze-batch job and the queue
// abstractions the gateway uses to run it off the request path.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed. Failed scoring runs are
	// never retried automatically; the operator resubmits.
	JobStatusFailed JobStatus = "failed"
)

// AnalyzeBatchJob submits one ingested run to the scoring service and
// reconciles the response.
type AnalyzeBatchJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// RunID identifies the ingested batch run to analyze.
	RunID string `json:"run_id"`

	// Filename is the original upload name, kept for log context.
	Filename string `json:"filename"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`
}

// Publisher enqueues analyze jobs. The abstraction keeps the handlers
// independent of the queue implementation.
type Publisher interface {
	// PublishAnalyzeBatch publishes a batch analysis job.
	PublishAnalyzeBatch(ctx context.Context, job *AnalyzeBatchJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer pulls analyze jobs off the queue.
type Consumer interface {
	// Start begins consuming jobs; handler is called for each job.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for the in-flight job to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes a single job. A returned error marks the job
// failed; it is not re-enqueued.
type JobHandler func(ctx context.Context, job *AnalyzeBatchJob) error

// JobStore tracks job state for status polling.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *AnalyzeBatchJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*AnalyzeBatchJob, error)

	// ActiveJobForRun returns the pending or running job for a run, if
	// any. The gateway uses it to gate duplicate analyze requests.
	ActiveJobForRun(ctx context.Context, runID string) (*AnalyzeBatchJob, bool)
}
