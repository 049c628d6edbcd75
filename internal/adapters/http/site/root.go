// Package site serves the HTML scoreboard page.
package site

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	app "github.com/okian/tally/internal/app"
	aggregate "github.com/okian/tally/internal/domain/aggregate"
	"github.com/okian/tally/internal/domain/display"
)

// SnapshotProvider exposes the last completed aggregation to the page.
type SnapshotProvider interface {
	Snapshot() (app.Snapshot, bool)
	LastError() error
}

// Page states rendered by the dashboard template.
const (
	stateLoading = "loading"
	stateError   = "error"
	stateReady   = "ready"
)

// Register attaches the scoreboard page routes to mux.
func Register(_ context.Context, mux *http.ServeMux, deps SnapshotProvider) {
	if mux == nil {
		panic("mux is nil")
	}

	h := NewRootHandler(deps)
	mux.HandleFunc("/", h.HandleRoot)
	mux.HandleFunc("/dashboard", h.HandleRoot)
}

// RootHandler renders the scoreboard page.
type RootHandler struct {
	deps SnapshotProvider
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps SnapshotProvider) *RootHandler {
	return &RootHandler{deps: deps}
}

// pageData feeds the dashboard template. Totals flow through
// html/template, so team names are escaped on output. FailureNote is
// built server-side with its month identifiers already escaped.
type pageData struct {
	State       string
	Message     string
	Totals      []row
	FailureNote template.HTML
	RefreshedAt string
}

type row struct {
	Rank  int
	Team  string
	Score float64
}

// HandleRoot handles GET / and GET /dashboard requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}

	data := h.buildPage()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(w, data)
}

// buildPage maps snapshot state onto the page placeholders: a loading
// message until the first aggregation lands, an error message when nothing
// could be loaded, and the ranked table otherwise.
func (h *RootHandler) buildPage() pageData {
	snap, ok := h.deps.Snapshot()
	if !ok {
		if err := h.deps.LastError(); err != nil {
			return pageData{State: stateError, Message: "Failed to load score data: " + err.Error()}
		}
		return pageData{State: stateLoading, Message: "Loading scores..."}
	}

	if snap.Months > 0 && snap.Loaded == 0 {
		return pageData{State: stateError, Message: "No month data could be loaded."}
	}

	data := pageData{
		State:       stateReady,
		RefreshedAt: snap.RefreshedAt.UTC().Format(time.RFC1123),
	}
	for _, t := range snap.Totals {
		data.Totals = append(data.Totals, row{Rank: t.Rank, Team: t.TeamName, Score: t.Score})
	}
	data.FailureNote = failureNote(snap.Failures)
	return data
}

// failureNote renders the "some months failed" line. Month identifiers come
// from remote manifests, so they are escaped here before the fragment is
// injected as trusted HTML.
func failureNote(failures []aggregate.Failure) template.HTML {
	if len(failures) == 0 {
		return ""
	}
	ids := make([]string, 0, len(failures))
	for _, f := range failures {
		ids = append(ids, display.EscapeHTML(f.MonthID))
	}
	return template.HTML("Some months could not be loaded: " + strings.Join(ids, ", "))
}

var pageTemplate = template.Must(template.New("scoreboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Team Scores</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 40rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: 0.5rem; text-align: left; }
.status { color: #666; }
.error { color: #b00; }
.note { color: #975; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Team Scores</h1>
{{- if eq .State "loading"}}
<p class="status">{{.Message}}</p>
{{- else if eq .State "error"}}
<p class="error">{{.Message}}</p>
{{- else}}
{{- if .Totals}}
<table>
<thead><tr><th>Rank</th><th>Team</th><th>Total Score</th></tr></thead>
<tbody>
{{- range .Totals}}
<tr><td>{{.Rank}}</td><td>{{.Team}}</td><td>{{.Score}}</td></tr>
{{- end}}
</tbody>
</table>
{{- else}}
<p class="status">No submissions yet.</p>
{{- end}}
{{- if .FailureNote}}
<p class="note">{{.FailureNote}}</p>
{{- end}}
<p class="status">Last refreshed {{.RefreshedAt}}</p>
{{- end}}
</body>
</html>
`))
