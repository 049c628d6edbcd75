// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/tally/internal/domain/aggregate"
	"github.com/okian/tally/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Totals runs a fresh aggregation across the configured months.
	Totals(ctx context.Context) (map[string]float64, []aggregate.Failure, error)

	// Month loads a single month's data.
	Month(ctx context.Context, id string) (model.Month, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	totalsHandler *TotalsHandler
	monthsHandler *MonthsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		totalsHandler: NewTotalsHandler(deps, maxLimit),
		monthsHandler: NewMonthsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/totals", MetricsMiddleware(s.totalsHandler.HandleGetTotals, "totals"))
	mux.HandleFunc("/months/", MetricsMiddleware(s.monthsHandler.HandleGetMonth, "months"))
}

// monthFailure is the wire shape of a per-month load failure.
type monthFailure struct {
	MonthID string `json:"month_id"`
	Error   string `json:"error"`
}

// totalsResponse mirrors the GET /totals payload.
type totalsResponse struct {
	Totals   []model.TeamTotal `json:"totals"`
	Failures []monthFailure    `json:"failures,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
