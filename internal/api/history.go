package api

import (
	"net/http"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/athuyarain/burme-mark/internal/history"
)

type historyResponse struct {
	Items []domain.HistoryItem `json:"items"`
	Stats map[string]int       `json:"stats"`
}

// GetHistory returns the aggregated activity view, filtered by the optional
// q (free-text) and kind query parameters. Stats always cover the unfiltered
// set so the summary cards show overall counts regardless of filter.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	items := h.aggregator.Build(r.Context())
	stats := history.Stats(items)

	query := r.URL.Query().Get("q")
	kind := r.URL.Query().Get("kind")
	filtered := history.Filter(items, query, kind)

	JSON(w, http.StatusOK, historyResponse{Items: filtered, Stats: stats})
}

// ClearHistory bulk-clears chats and images and resets the project list.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.codec.ClearHistory(r.Context()); err != nil {
		Error(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
