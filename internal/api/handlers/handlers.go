// Package handlers implements the gateway's HTTP endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fraudlens/fraud-console/internal/api/middleware"
	"github.com/fraudlens/fraud-console/internal/assist"
	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/history"
	"github.com/fraudlens/fraud-console/internal/reconcile"
	"github.com/fraudlens/fraud-console/internal/scoring"
	"github.com/fraudlens/fraud-console/internal/stats"
	"github.com/fraudlens/fraud-console/internal/validate"
)

// PredictHandler handles single-transaction scoring.
type PredictHandler struct {
	scorer scoring.Client
	sink   history.Sink
	log    zerolog.Logger
}

// NewPredictHandler creates a new single-prediction handler.
func NewPredictHandler(scorer scoring.Client, sink history.Sink, log zerolog.Logger) *PredictHandler {
	return &PredictHandler{scorer: scorer, sink: sink, log: log}
}

// Predict handles POST /api/predict. Validation failures block the
// submission locally: the full violation list is returned and nothing
// reaches the scoring service.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var rec domain.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := validate.Check(rec); !violations.OK() {
		middleware.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "Validation failed",
			"violations": violations,
		})
		return
	}

	outcome, err := h.scorer.PredictOne(ctx, rec)
	if err != nil {
		h.log.Error().Err(err).Msg("Single prediction failed")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to predict transaction")
		return
	}

	result := reconcile.One(rec, outcome, time.Now())

	if err := h.sink.InsertResults(ctx, result.ID, []domain.Result{result}); err != nil {
		// History is best-effort; the prediction itself succeeded.
		h.log.Warn().Err(err).Msg("Failed to record prediction history")
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// AssistHandler proxies the conversational assistant session calls.
type AssistHandler struct {
	client *assist.Client
	log    zerolog.Logger
}

// NewAssistHandler creates a new assistant handler.
func NewAssistHandler(client *assist.Client, log zerolog.Logger) *AssistHandler {
	return &AssistHandler{client: client, log: log}
}

// Chat handles POST /api/chat.
func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question  string `json:"question"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		middleware.WriteError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, sessionID, err := h.client.Ask(r.Context(), req.Question, req.SessionID)
	if err != nil {
		h.log.Error().Err(err).Msg("Assistant request failed")
		middleware.WriteError(w, http.StatusBadGateway, "Assistant unavailable")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"answer":     answer,
		"session_id": sessionID,
	})
}

// History handles GET /api/chat/history/{id}.
func (h *AssistHandler) History(w http.ResponseWriter, r *http.Request, sessionID string) {
	messages, err := h.client.History(r.Context(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to fetch chat history")
		middleware.WriteError(w, http.StatusBadGateway, "Assistant unavailable")
		return
	}
	if messages == nil {
		messages = []assist.Message{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"history": messages})
}

// Clear handles DELETE /api/chat/clear/{id}.
func (h *AssistHandler) Clear(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.client.Clear(r.Context(), sessionID); err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear chat session")
		middleware.WriteError(w, http.StatusBadGateway, "Assistant unavailable")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// HistoryHandler serves locally persisted prediction history.
type HistoryHandler struct {
	sink history.Sink
	log  zerolog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(sink history.Sink, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{sink: sink, log: log}
}

// Recent handles GET /api/history. It answers an empty list when the
// sink is disabled.
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	rows, err := h.sink.RecentPredictions(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch prediction history")
		middleware.WriteError(w, http.StatusInternalServerError, "History unavailable")
		return
	}
	if rows == nil {
		rows = []*history.PredictionRow{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(rows),
		"predictions": rows,
	})
}

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	client *stats.Client
	log    zerolog.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(client *stats.Client, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{client: client, log: log}
}

// Dashboard handles GET /api/stats.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.client.Fetch(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch dashboard stats")
		middleware.WriteError(w, http.StatusBadGateway, "Statistics unavailable")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dashboard)
}
