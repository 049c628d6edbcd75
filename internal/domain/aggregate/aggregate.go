// Package aggregate computes cumulative team scores across monthly
// submission data, tolerating individual month-load failures.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/logger"
	"github.com/okian/tally/pkg/metrics"
)

// Loader loads one month's data by its identifier. Implementations report
// missing resources and malformed payloads as errors; they never panic.
type Loader interface {
	Month(ctx context.Context, id string) (model.Month, error)
}

// Result is the outcome of a single month load. Exactly one of Month and
// Err is meaningful: a nil Err means Month holds the loaded data.
type Result struct {
	MonthID string
	Month   model.Month
	Err     error
}

// Ok reports whether the load succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// Failure records a month that could not be loaded during an aggregation.
type Failure struct {
	MonthID string
	Err     error
}

// Aggregator folds monthly submissions into per-team totals.
type Aggregator struct {
	loader Loader
	logger logger.Logger
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger for the aggregator.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// New constructs an Aggregator reading months from loader.
func New(loader Loader, opts ...Option) *Aggregator {
	a := &Aggregator{
		loader: loader,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logger.Get().Named("aggregate")
	}

	return a
}

// Totals sums submission scores per team across the given months.
//
// Months are loaded strictly in input order, one at a time. A month that
// fails to load contributes nothing: the failure is logged, recorded in the
// returned slice, and aggregation moves on to the next identifier. The
// operation itself never fails; the totals map holds an entry for every team
// observed in at least one successfully loaded month and nothing else. The
// returned map is freshly allocated on every call and owned by the caller.
func (a *Aggregator) Totals(ctx context.Context, monthIDs []string) (map[string]float64, []Failure) {
	start := time.Now()
	defer func() {
		metrics.RecordAggregationDuration(float64(time.Since(start).Milliseconds()))
	}()

	totals := make(map[string]float64)
	var failures []Failure

	for _, r := range a.load(ctx, monthIDs) {
		if !r.Ok() {
			a.logger.Warn(ctx, "skipping month that failed to load",
				logger.String("monthID", r.MonthID),
				logger.Error(r.Err),
			)
			failures = append(failures, Failure{MonthID: r.MonthID, Err: r.Err})
			continue
		}

		for _, sub := range r.Month.Submissions {
			totals[sub.TeamName] += sub.Score
		}
		metrics.RecordSubmissions(len(r.Month.Submissions))
	}

	metrics.UpdateTeamsTotal(len(totals))
	return totals, failures
}

// load fetches every month sequentially and wraps each outcome in a Result.
func (a *Aggregator) load(ctx context.Context, monthIDs []string) []Result {
	results := make([]Result, 0, len(monthIDs))
	for _, id := range monthIDs {
		m, err := a.loader.Month(ctx, id)
		results = append(results, Result{MonthID: id, Month: m, Err: err})
	}
	return results
}

// Ranked converts a totals map into entries ordered by score descending,
// with team name ascending as the tie-break. Ranks are assigned 1..n.
func Ranked(totals map[string]float64) []model.TeamTotal {
	entries := make([]model.TeamTotal, 0, len(totals))
	for name, score := range totals {
		entries = append(entries, model.TeamTotal{TeamName: name, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TeamName < entries[j].TeamName
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
