// Package api exposes the reading feed over HTTP and MCP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/recorder"
	"github.com/nvoss/eras/internal/selection"
	"github.com/nvoss/eras/internal/storage"
)

const maxInteractionBodySize = 1 << 20 // 1MB

// Deps holds what the handlers need. All fields are required.
type Deps struct {
	Store    *storage.Store
	Selector *selection.Selector
	Recorder *recorder.Recorder
	Logger   *slog.Logger
}

// ContentResponse is one served passage.
type ContentResponse struct {
	ID        string  `json:"id"`
	Topic     string  `json:"topic"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	WordCount int     `json:"word_count"`
	Score     float64 `json:"score"`
}

// InteractionRequest is the feedback body for a served passage. ContentID
// is accepted for wire compatibility but the path parameter is
// authoritative.
type InteractionRequest struct {
	ContentID          string `json:"content_id"`
	FullyRead          bool   `json:"fully_read"`
	ReadingTimeSeconds int    `json:"reading_time_seconds"`
}

// StatsResponse summarizes the catalog and the event log.
type StatsResponse struct {
	TotalContent      int `json:"total_content"`
	TotalInteractions int `json:"total_interactions"`
}

// PeriodResponse is one catalog period with its unit count.
type PeriodResponse struct {
	Topic     string `json:"topic"`
	Label     string `json:"label"`
	DateRange string `json:"date_range"`
	Units     int    `json:"units"`
}

// NewHandler builds the HTTP router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/content/random", handleRandomContent(deps))
	r.Post("/content/{id}/interaction", handleInteraction(deps))
	r.Get("/stats", handleStats(deps))
	r.Get("/periods", handlePeriods(deps))
	r.Get("/health", handleHealth())

	return r
}

func handleRandomContent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unit, err := deps.Selector.Next()
		if errors.Is(err, selection.ErrNoContent) {
			httpError(w, http.StatusNotFound, "no_content", "the catalog is empty; run an ingestion first")
			return
		}
		if err != nil {
			deps.Logger.Error("selection failed", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "selection failed: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, ContentResponse{
			ID:        unit.ID,
			Topic:     unit.Period.Label(),
			Title:     unit.Title,
			Content:   unit.Body,
			WordCount: unit.WordCount,
			Score:     unit.Score,
		})
	}
}

func handleInteraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		r.Body = http.MaxBytesReader(w, r.Body, maxInteractionBodySize)
		defer r.Body.Close()

		var req InteractionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		err := deps.Recorder.Record(id, req.FullyRead, req.ReadingTimeSeconds)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "invalid_request_error", "unknown content id %q", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	}
}

func handleStats(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		units, err := deps.Store.CountUnits()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting content: %v", err)
			return
		}
		events, err := deps.Store.CountEvents()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting interactions: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, StatsResponse{
			TotalContent:      units,
			TotalInteractions: events,
		})
	}
}

func handlePeriods(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := deps.Store.CountUnitsByPeriod()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting periods: %v", err)
			return
		}

		out := make([]PeriodResponse, 0, len(period.All()))
		for _, p := range period.All() {
			out = append(out, PeriodResponse{
				Topic:     p.String(),
				Label:     p.Label(),
				DateRange: p.DateRange(),
				Units:     counts[p],
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
