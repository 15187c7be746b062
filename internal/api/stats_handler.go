package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/platform/clock"
	"github.com/phrazzld/vortex-api/internal/store"
)

// StatsHandler handles engagement stats and study history API requests.
type StatsHandler struct {
	statsStore   store.StatsStore
	historyStore store.HistoryStore
	clock        clock.Clock
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsStore store.StatsStore, historyStore store.HistoryStore, clk clock.Clock) *StatsHandler {
	return &StatsHandler{
		statsStore:   statsStore,
		historyStore: historyStore,
		clock:        clk,
	}
}

// Get handles GET /api/stats. Users without a stats record yet get a
// zeroed aggregate rather than a 404.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.statsStore.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrStatsNotFound) {
			RespondWithJSON(w, r, http.StatusOK, domain.NewUserStats("", h.clock.Now()))
			return
		}
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, stats)
}

// History handles GET /api/history.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.historyStore.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.StudyHistoryEntry{}
	}
	RespondWithJSON(w, r, http.StatusOK, entries)
}
