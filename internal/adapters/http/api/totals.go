// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/tally/internal/domain/aggregate"
	"github.com/okian/tally/internal/domain/model"
)

// TotalsDependencies defines the interface for totals operations.
type TotalsDependencies interface {
	Totals(ctx context.Context) (map[string]float64, []aggregate.Failure, error)
}

// TotalsHandler handles aggregated totals requests.
type TotalsHandler struct {
	deps     TotalsDependencies
	maxLimit int
}

// NewTotalsHandler creates a new totals handler.
func NewTotalsHandler(deps TotalsDependencies, maxLimit int) *TotalsHandler {
	return &TotalsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTotals handles GET /totals?limit=N requests. The limit is
// optional; without it the full ranked table is returned.
func (h *TotalsHandler) HandleGetTotals(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_totals"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if h.maxLimit > 0 && n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	totals, failures, err := h.deps.Totals(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "manifest_unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}

	ranked := aggregate.Ranked(totals)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	resp := totalsResponse{Totals: ranked}
	if resp.Totals == nil {
		resp.Totals = []model.TeamTotal{}
	}
	for _, f := range failures {
		resp.Failures = append(resp.Failures, monthFailure{MonthID: f.MonthID, Error: f.Err.Error()})
	}
	writeJSON(w, http.StatusOK, resp)
}
