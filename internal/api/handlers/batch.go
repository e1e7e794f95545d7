package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fraudlens/fraud-console/internal/api/middleware"
	"github.com/fraudlens/fraud-console/internal/archive"
	"github.com/fraudlens/fraud-console/internal/export"
	"github.com/fraudlens/fraud-console/internal/ingest"
	"github.com/fraudlens/fraud-console/internal/jobs"
	"github.com/fraudlens/fraud-console/internal/run"
)

const maxUploadBytes = 32 << 20 // 32 MiB

// previewRows is how many raw rows the upload response echoes back.
const previewRows = 5

// BatchHandler drives the batch pipeline: upload+ingest, gated analyze,
// results and CSV export.
type BatchHandler struct {
	runs      *run.Store
	store     jobs.JobStore
	publisher jobs.Publisher
	archiver  archive.Archiver
	log       zerolog.Logger
}

// NewBatchHandler creates a new batch handler. archiver may be nil when
// GCS archival is not configured.
func NewBatchHandler(runs *run.Store, store jobs.JobStore, publisher jobs.Publisher, archiver archive.Archiver, log zerolog.Logger) *BatchHandler {
	return &BatchHandler{
		runs:      runs,
		store:     store,
		publisher: publisher,
		archiver:  archiver,
		log:       log,
	}
}

// Upload handles POST /api/batch/upload. The file is ingested eagerly so
// a DecodeError surfaces immediately, before anything is submitted.
func (h *BatchHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	batch, err := ingest.ReadBatch(io.TeeReader(file, &buf))
	if err != nil {
		var decodeErr *ingest.DecodeError
		if errors.As(err, &decodeErr) {
			middleware.WriteError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Failed to parse CSV file: %v", decodeErr.Err))
			return
		}
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	batchRun := run.New(header.Filename, batch)
	h.runs.Put(batchRun)

	if h.archiver != nil {
		if uri, err := h.archiver.Store(ctx, header.Filename, &buf); err != nil {
			h.log.Warn().Err(err).Str("filename", header.Filename).Msg("Failed to archive upload")
		} else {
			h.log.Info().Str("gcs_uri", uri).Str("run_id", batchRun.ID).Msg("Upload archived")
		}
	}

	preview := batch.RawRows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	h.log.Info().Str("run_id", batchRun.ID).Int("rows", batch.Len()).
		Str("filename", header.Filename).Msg("Batch ingested")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   batchRun.ID,
		"filename": batchRun.Filename,
		"rows":     batch.Len(),
		"preview":  preview,
	})
}

// Analyze handles POST /api/batch/analyze. A second analyze for the same
// run while one is outstanding is rejected, so duplicate in-flight
// scoring requests for one file selection cannot happen.
func (h *BatchHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		RunID string `json:"run_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RunID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "run_id is required")
		return
	}

	batchRun, ok := h.runs.Get(req.RunID)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Run not found")
		return
	}
	if batchRun.Batch.Len() == 0 {
		middleware.WriteError(w, http.StatusUnprocessableEntity, "Run has no data rows")
		return
	}

	if active, busy := h.store.ActiveJobForRun(ctx, req.RunID); busy {
		middleware.WriteJSON(w, http.StatusConflict, map[string]string{
			"error":  "Analysis already in progress for this run",
			"job_id": active.JobID,
		})
		return
	}

	job := &jobs.AnalyzeBatchJob{
		RunID:    batchRun.ID,
		Filename: batchRun.Filename,
	}
	if err := h.publisher.PublishAnalyzeBatch(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue analyze job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue analysis")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("run_id", batchRun.ID).Msg("Analyze job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"run_id": batchRun.ID,
		"status": string(job.Status),
	})
}

// GetJob handles GET /api/jobs/{id}.
func (h *BatchHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// Results handles GET /api/runs/{id}/results.
func (h *BatchHandler) Results(w http.ResponseWriter, r *http.Request, runID string) {
	batchRun, ok := h.runs.Get(runID)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Run not found")
		return
	}
	if !batchRun.Analyzed() {
		middleware.WriteError(w, http.StatusConflict, "Run has not been analyzed yet")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":  batchRun.ID,
		"count":   len(batchRun.Results),
		"results": batchRun.Results,
	})
}

// Export handles GET /api/runs/{id}/export, streaming the results CSV
// with a date-stamped download filename.
func (h *BatchHandler) Export(w http.ResponseWriter, r *http.Request, runID string) {
	batchRun, ok := h.runs.Get(runID)
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Run not found")
		return
	}
	if !batchRun.Analyzed() || len(batchRun.Results) == 0 {
		middleware.WriteError(w, http.StatusConflict, "No results to export")
		return
	}

	filename := export.Filename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.Write(w, batchRun.Results); err != nil {
		h.log.Error().Err(err).Str("run_id", runID).Msg("Export failed mid-stream")
	}
}
