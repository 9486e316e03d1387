package server

import (
	"encoding/json"
	"net/http"
	"time"

	"sportstracker/internal/models"
	"sportstracker/internal/tracker"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the board API
type Handler struct {
	boards BoardSource
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// TrackerSummary is one entry of the tracker list
type TrackerSummary struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Sport        string `json:"sport"`
	League       string `json:"league"`
	TeamName     string `json:"team_name,omitempty"`
	OddsSportKey string `json:"odds_sport_key,omitempty"`
	Category     string `json:"category,omitempty"`
	Ready        bool   `json:"ready"`
}

// ScheduleResponse is the schedule section of a board
type ScheduleResponse struct {
	Key          string              `json:"key"`
	CycleID      string              `json:"cycle_id"`
	OddsAttached bool                `json:"odds_attached"`
	Notice       string              `json:"notice,omitempty"`
	Rows         []models.DisplayRow `json:"rows"`
}

// OddsResponse is the futures section of a board
type OddsResponse struct {
	Key         string                      `json:"key"`
	CycleID     string                      `json:"cycle_id"`
	Outright    models.OutrightSummary      `json:"outright"`
	Constructor *models.ConstructorStanding `json:"constructor,omitempty"`
}

// NewsResponse is the news section of a board
type NewsResponse struct {
	Key     string            `json:"key"`
	CycleID string            `json:"cycle_id"`
	News    []models.NewsItem `json:"news"`
}

// HealthCheck reports liveness and the last completed refresh
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	store := h.boards.Store()

	resp := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"cycle_id":  store.CycleID(),
	}
	if updated := store.Updated(); !updated.IsZero() {
		resp["last_refresh"] = updated.UTC()
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListTrackers lists the configured trackers in display order
func (h *Handler) ListTrackers(w http.ResponseWriter, r *http.Request) {
	store := h.boards.Store()
	trackers := h.boards.Trackers()

	out := make([]TrackerSummary, 0, len(trackers))
	for _, t := range trackers {
		_, ready := store.Get(t.Key)
		out = append(out, TrackerSummary{
			Key:          t.Key,
			Label:        t.Label,
			Sport:        t.Sport,
			League:       t.League,
			TeamName:     t.TeamName,
			OddsSportKey: t.OddsSportKey,
			Category:     t.Category,
			Ready:        ready,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"trackers": out,
		"count":    len(out),
	})
}

// GetBoard returns the full board of a tracker
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// GetSchedule returns the joined schedule rows of a tracker
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}

	rows := board.Rows
	if rows == nil {
		rows = []models.DisplayRow{}
	}
	respondJSON(w, http.StatusOK, ScheduleResponse{
		Key:          board.Key,
		CycleID:      board.CycleID,
		OddsAttached: board.OddsAttached,
		Notice:       board.Notice,
		Rows:         rows,
	})
}

// GetOdds returns the futures summary of a tracker
func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, OddsResponse{
		Key:         board.Key,
		CycleID:     board.CycleID,
		Outright:    board.Outright,
		Constructor: board.Constructor,
	})
}

// GetNews returns the news items of a tracker
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}

	news := board.News
	if news == nil {
		news = []models.NewsItem{}
	}
	respondJSON(w, http.StatusOK, NewsResponse{
		Key:     board.Key,
		CycleID: board.CycleID,
		News:    news,
	})
}

// board resolves the {key} URL parameter, writing the error response itself
// when it returns false
func (h *Handler) board(w http.ResponseWriter, r *http.Request) (tracker.Board, bool) {
	key := chi.URLParam(r, "key")

	board, found, err := h.boards.Board(r.Context(), key)
	if !found {
		respondError(w, http.StatusNotFound, "unknown tracker: "+key, nil)
		return tracker.Board{}, false
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "board not available", err)
		return tracker.Board{}, false
	}
	return board, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Warn().Err(err).Int("status", status).Msg(message)
	}

	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
