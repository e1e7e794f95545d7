package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraud-console/internal/jobs"
)

func TestQueueProcessesJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(4, store)
	ctx := context.Background()

	processed := make(chan string, 1)
	require.NoError(t, queue.Start(ctx, func(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
		processed <- job.RunID
		return nil
	}))

	job := &jobs.AnalyzeBatchJob{RunID: "run-1", Filename: "batch.csv"}
	require.NoError(t, queue.PublishAnalyzeBatch(ctx, job))

	// Publish fills in id, status and creation time.
	assert.NotEmpty(t, job.JobID)
	assert.False(t, job.CreatedAt.IsZero())

	select {
	case runID := <-processed:
		assert.Equal(t, "run-1", runID)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	require.NoError(t, queue.Stop(ctx))

	saved, err := store.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusCompleted, saved.Status)
	assert.NotNil(t, saved.StartedAt)
	assert.NotNil(t, saved.CompletedAt)
	assert.Empty(t, saved.Error)
}

func TestQueueMarksFailedJobWithoutRetry(t *testing.T) {
	store := NewStore()
	queue := NewQueue(4, store)
	ctx := context.Background()

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{}, 1)
	require.NoError(t, queue.Start(ctx, func(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
		mu.Lock()
		attempts++
		mu.Unlock()
		done <- struct{}{}
		return errors.New("scoring unavailable")
	}))

	job := &jobs.AnalyzeBatchJob{RunID: "run-1"}
	require.NoError(t, queue.PublishAnalyzeBatch(ctx, job))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	require.NoError(t, queue.Stop(ctx))

	saved, err := store.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusFailed, saved.Status)
	assert.Equal(t, "scoring unavailable", saved.Error)

	// Failed jobs stay failed; the handler ran exactly once.
	mu.Lock()
	assert.Equal(t, 1, attempts)
	mu.Unlock()
}

func TestQueueRunsJobsSequentially(t *testing.T) {
	queue := NewQueue(8, NewStore())
	ctx := context.Background()

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	var order []string
	done := make(chan struct{}, 3)

	require.NoError(t, queue.Start(ctx, func(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		order = append(order, job.RunID)
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		done <- struct{}{}
		return nil
	}))

	for _, runID := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, queue.PublishAnalyzeBatch(ctx, &jobs.AnalyzeBatchJob{RunID: runID}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs were not processed")
		}
	}
	require.NoError(t, queue.Stop(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxInFlight, "only one job may be in flight at a time")
	assert.Equal(t, []string{"run-1", "run-2", "run-3"}, order)
}

func TestQueueRejectsPublishAfterStop(t *testing.T) {
	queue := NewQueue(1, NewStore())
	ctx := context.Background()

	require.NoError(t, queue.Stop(ctx))

	err := queue.PublishAnalyzeBatch(ctx, &jobs.AnalyzeBatchJob{RunID: "run-1"})
	assert.Error(t, err)
}

func TestQueueStopIsIdempotent(t *testing.T) {
	queue := NewQueue(1, NewStore())
	ctx := context.Background()

	require.NoError(t, queue.Stop(ctx))
	require.NoError(t, queue.Stop(ctx))
	require.NoError(t, queue.Close())
}
