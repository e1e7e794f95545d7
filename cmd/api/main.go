// Command api runs the fraud-console HTTP gateway: it fronts the remote
// scoring service with upload/analyze/export endpoints for the web UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fraudlens/fraud-console/internal/api/handlers"
	"github.com/fraudlens/fraud-console/internal/api/middleware"
	"github.com/fraudlens/fraud-console/internal/archive"
	"github.com/fraudlens/fraud-console/internal/assist"
	"github.com/fraudlens/fraud-console/internal/config"
	"github.com/fraudlens/fraud-console/internal/history"
	"github.com/fraudlens/fraud-console/internal/jobs"
	"github.com/fraudlens/fraud-console/internal/jobs/inmemory"
	"github.com/fraudlens/fraud-console/internal/logger"
	"github.com/fraudlens/fraud-console/internal/reconcile"
	"github.com/fraudlens/fraud-console/internal/run"
	"github.com/fraudlens/fraud-console/internal/scoring"
	"github.com/fraudlens/fraud-console/internal/stats"
)

func main() {
	var configPath = flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	// A local .env is convenient in development; absence is fine.
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	scorer := scoring.NewHTTPClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, log)
	assistClient := assist.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, log)
	statsClient := stats.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout)

	var sink history.Sink = history.Discard{}
	if cfg.HistoryEnabled() {
		bqSink, err := history.NewBigQuerySink(ctx, cfg.History.ProjectID, cfg.History.DatasetID, cfg.History.TableID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create history sink")
		}
		defer bqSink.Close()
		sink = bqSink
	} else {
		log.Warn().Msg("No history project configured - predictions will not be persisted")
	}

	var archiver archive.Archiver
	if cfg.ArchiveEnabled() {
		archiver = archive.NewGCSArchiver(cfg.Archive.Bucket, cfg.Archive.Prefix)
	} else {
		log.Warn().Msg("No archive bucket configured - uploads will not be archived")
	}

	runs := run.NewStore()
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(16, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// The analyze job: score the whole batch, then zip predictions back
	// onto the ingested records by position.
	jobHandler := func(ctx context.Context, job *jobs.AnalyzeBatchJob) error {
		batchRun, ok := runs.Get(job.RunID)
		if !ok {
			return fmt.Errorf("run not found: %s", job.RunID)
		}

		log.Info().Str("job_id", job.JobID).Str("run_id", job.RunID).
			Int("rows", batchRun.Batch.Len()).Msg("Scoring batch")

		outcomes, err := scorer.PredictBatch(ctx, batchRun.Batch.Records)
		if err != nil {
			log.Error().Err(err).Str("job_id", job.JobID).Msg("Batch scoring failed")
			return err
		}

		submittedAt := time.Now()
		results, err := reconcile.Pair(batchRun.Batch.Records, batchRun.Batch.RawRows, outcomes, submittedAt)
		if err != nil {
			return err
		}

		runs.Put(batchRun.WithResults(results, submittedAt))

		if err := sink.InsertResults(ctx, batchRun.ID, results); err != nil {
			log.Warn().Err(err).Str("run_id", batchRun.ID).Msg("Failed to record batch history")
		}

		log.Info().Str("job_id", job.JobID).Str("run_id", job.RunID).
			Int("results", len(results)).Msg("Batch analysis completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting analyze worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Analyze worker stopped with error")
		}
	}()

	predictHandler := handlers.NewPredictHandler(scorer, sink, log)
	batchHandler := handlers.NewBatchHandler(runs, jobStore, jobQueue, archiver, log)
	assistHandler := handlers.NewAssistHandler(assistClient, log)
	statsHandler := handlers.NewStatsHandler(statsClient, log)
	historyHandler := handlers.NewHistoryHandler(sink, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			predictHandler.Predict(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/batch/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			batchHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/batch/analyze", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			batchHandler.Analyze(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
		if jobID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
			return
		}
		batchHandler.GetJob(w, r, jobID)
	})

	mux.HandleFunc("/api/runs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
		switch {
		case strings.HasSuffix(rest, "/results"):
			batchHandler.Results(w, r, strings.TrimSuffix(rest, "/results"))
		case strings.HasSuffix(rest, "/export"):
			batchHandler.Export(w, r, strings.TrimSuffix(rest, "/export"))
		default:
			middleware.WriteError(w, http.StatusNotFound, "Not found")
		}
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			statsHandler.Dashboard(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			historyHandler.Recent(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assistHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat/history/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		sessionID := strings.TrimPrefix(r.URL.Path, "/api/chat/history/")
		if sessionID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Session ID is required")
			return
		}
		assistHandler.History(w, r, sessionID)
	})

	mux.HandleFunc("/api/chat/clear/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		sessionID := strings.TrimPrefix(r.URL.Path, "/api/chat/clear/")
		if sessionID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Session ID is required")
			return
		}
		assistHandler.Clear(w, r, sessionID)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("scoring_url", cfg.Scoring.BaseURL).
			Msg("Starting gateway server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
