package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/ingest"
	"github.com/fraudlens/fraud-console/internal/jobs"
	"github.com/fraudlens/fraud-console/internal/jobs/inmemory"
	"github.com/fraudlens/fraud-console/internal/run"
)

func newBatchHandler(t *testing.T) (*BatchHandler, *run.Store, *inmemory.Store) {
	t.Helper()
	runs := run.NewStore()
	store := inmemory.NewStore()
	queue := inmemory.NewQueue(4, store)
	t.Cleanup(func() { _ = queue.Close() })
	return NewBatchHandler(runs, store, queue, nil, zerolog.Nop()), runs, store
}

func multipartUpload(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadIngestsAndPreviews(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	csvData := "TransactionAmt,ProductCD\n" +
		"10,W\n20,C\n30,R\n40,H\n50,S\n60,W\n70,C\n"

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartUpload(t, "batch.csv", csvData))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID    string          `json:"run_id"`
		Filename string          `json:"filename"`
		Rows     int             `json:"rows"`
		Preview  []domain.RawRow `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "batch.csv", resp.Filename)
	assert.Equal(t, 7, resp.Rows)
	assert.Len(t, resp.Preview, 5)
	assert.Equal(t, "10", resp.Preview[0]["TransactionAmt"])

	stored, ok := runs.Get(resp.RunID)
	require.True(t, ok)
	assert.Equal(t, 7, stored.Batch.Len())
	assert.False(t, stored.Analyzed())
}

func TestUploadRejectsMalformedCSV(t *testing.T) {
	handler, _, _ := newBatchHandler(t)

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartUpload(t, "bad.csv", "TransactionAmt,ProductCD\n\"10,W\n"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse CSV file")
}

func TestUploadRequiresFile(t *testing.T) {
	handler, _, _ := newBatchHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEnqueuesJob(t *testing.T) {
	handler, runs, store := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10"}},
	})
	runs.Put(batchRun)

	body := []byte(`{"run_id":"` + batchRun.ID + `"}`)
	rec := httptest.NewRecorder()
	handler.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/batch/analyze", bytes.NewReader(body)))

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["job_id"])
	assert.Equal(t, batchRun.ID, resp["run_id"])
	assert.Equal(t, string(jobs.JobStatusPending), resp["status"])

	saved, err := store.GetJob(context.Background(), resp["job_id"])
	require.NoError(t, err)
	assert.Equal(t, batchRun.ID, saved.RunID)
}

func TestAnalyzeRejectsDuplicateInFlight(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10"}},
	})
	runs.Put(batchRun)

	body := `{"run_id":"` + batchRun.ID + `"}`

	first := httptest.NewRecorder()
	handler.Analyze(first, httptest.NewRequest(http.MethodPost, "/api/batch/analyze", bytes.NewReader([]byte(body))))
	require.Equal(t, http.StatusAccepted, first.Code)

	// The queue has no worker running, so the first job stays pending and
	// gates the second request.
	second := httptest.NewRecorder()
	handler.Analyze(second, httptest.NewRequest(http.MethodPost, "/api/batch/analyze", bytes.NewReader([]byte(body))))
	require.Equal(t, http.StatusConflict, second.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["job_id"])
}

func TestAnalyzeUnknownRun(t *testing.T) {
	handler, _, _ := newBatchHandler(t)

	rec := httptest.NewRecorder()
	handler.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/batch/analyze",
		bytes.NewReader([]byte(`{"run_id":"missing"}`))))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeEmptyRun(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("empty.csv", &ingest.Batch{})
	runs.Put(batchRun)

	rec := httptest.NewRecorder()
	handler.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/batch/analyze",
		bytes.NewReader([]byte(`{"run_id":"`+batchRun.ID+`"}`))))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestResultsBeforeAnalysis(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10"}},
	})
	runs.Put(batchRun)

	rec := httptest.NewRecorder()
	handler.Results(rec, httptest.NewRequest(http.MethodGet, "/", nil), batchRun.ID)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResultsAfterAnalysis(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10"}},
	})
	results := []domain.Result{{
		ID:      "res-1",
		Record:  batchRun.Batch.Records[0],
		Outcome: domain.Outcome{Label: domain.LabelFraud, Probability: 0.9, FraudScore: 0.9},
		Status:  domain.StatusSuccess,
	}}
	runs.Put(batchRun.WithResults(results, time.Now()))

	rec := httptest.NewRecorder()
	handler.Results(rec, httptest.NewRequest(http.MethodGet, "/", nil), batchRun.ID)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID   string          `json:"run_id"`
		Count   int             `json:"count"`
		Results []domain.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, batchRun.ID, resp.RunID)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, domain.LabelFraud, resp.Results[0].Outcome.Label)
}

func TestExportStreamsCSV(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0, "ProductCD": "W"}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10", "ProductCD": "W"}},
	})
	results := []domain.Result{{
		ID:          "res-1",
		Record:      batchRun.Batch.Records[0],
		Outcome:     domain.Outcome{Label: domain.LabelLegitimate, Probability: 0.1, FraudScore: 0.1},
		SubmittedAt: time.Now(),
		Status:      domain.StatusSuccess,
	}}
	runs.Put(batchRun.WithResults(results, time.Now()))

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/", nil), batchRun.ID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fraud_analysis_")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "res-1", rows[1][0])
	assert.Equal(t, "10", rows[1][1])
}

func TestExportWithoutResults(t *testing.T) {
	handler, runs, _ := newBatchHandler(t)

	batchRun := run.New("batch.csv", &ingest.Batch{
		Records: []domain.Record{{"TransactionAmt": 10.0}},
		RawRows: []domain.RawRow{{"TransactionAmt": "10"}},
	})
	runs.Put(batchRun)

	rec := httptest.NewRecorder()
	handler.Export(rec, httptest.NewRequest(http.MethodGet, "/", nil), batchRun.ID)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetJobNotFound(t *testing.T) {
	handler, _, _ := newBatchHandler(t)

	rec := httptest.NewRecorder()
	handler.GetJob(rec, httptest.NewRequest(http.MethodGet, "/", nil), "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
