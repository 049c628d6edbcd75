package api

import (
	"net/http"

	app "github.com/okian/tally/internal/app"
)

// StatsProvider reports the aggregation state served by /stats.
type StatsProvider interface {
	Stats() app.Stats
}

// StatsHandler serves the aggregation summary.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler backed by provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Stats())
}
