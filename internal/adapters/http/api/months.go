// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/tally/internal/adapters/source"
	"github.com/okian/tally/internal/domain/display"
	"github.com/okian/tally/internal/domain/model"
)

// MonthDependencies defines the interface for single-month operations.
type MonthDependencies interface {
	Month(ctx context.Context, id string) (model.Month, error)
}

// MonthsHandler handles single-month requests.
type MonthsHandler struct {
	deps MonthDependencies
}

// NewMonthsHandler creates a new months handler.
func NewMonthsHandler(deps MonthDependencies) *MonthsHandler {
	return &MonthsHandler{deps: deps}
}

// monthResponse mirrors the GET /months/{id} payload.
type monthResponse struct {
	ID          string             `json:"id"`
	Label       string             `json:"label,omitempty"`
	Date        string             `json:"date,omitempty"`
	DisplayDate string             `json:"display_date,omitempty"`
	Submissions []model.Submission `json:"submissions"`
}

// HandleGetMonth handles GET /months/{id} requests.
func (h *MonthsHandler) HandleGetMonth(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_month"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/months/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	month, err := h.deps.Month(r.Context(), id)
	if err != nil {
		if errors.Is(err, source.ErrParse) {
			writeError(w, http.StatusBadGateway, "bad_upstream", Wrap(op, err))
			return
		}
		if source.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := monthResponse{
		ID:          month.ID,
		Label:       month.Label,
		Date:        month.Date,
		Submissions: month.Submissions,
	}
	if resp.Submissions == nil {
		resp.Submissions = []model.Submission{}
	}
	if month.Date != "" {
		resp.DisplayDate = display.FormatDate(month.Date)
	}
	writeJSON(w, http.StatusOK, resp)
}
