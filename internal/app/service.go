// Package app provides the core business service that implements the
// dependencies required by the HTTP API and the dashboard site.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/okian/tally/internal/adapters/source"
	"github.com/okian/tally/internal/domain/aggregate"
	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/logger"
	"github.com/okian/tally/pkg/metrics"
)

// Snapshot is the last completed aggregation, kept for the dashboard and
// stats endpoints. API reads always recompute; the snapshot only spares the
// HTML page a full reload on every view.
type Snapshot struct {
	Totals      []model.TeamTotal
	Failures    []aggregate.Failure
	Months      int
	Loaded      int
	RefreshedAt time.Time
}

// Service wires the data source and the aggregator and owns the snapshot
// refresh lifecycle.
type Service struct {
	mu sync.RWMutex

	// Core components
	src        source.Source
	aggregator *aggregate.Aggregator
	watcher    *source.Watcher

	// Configuration
	months          []string // explicit month list; empty means use the manifest
	refreshInterval time.Duration
	watch           bool

	// State
	snapshot *Snapshot
	lastErr  error
	started  bool
	stopCh   chan struct{}
	wg       sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMonths overrides the manifest with an explicit month identifier list.
func WithMonths(months []string) Option {
	return func(s *Service) {
		if len(months) > 0 {
			s.months = months
		}
	}
}

// WithRefreshInterval enables periodic snapshot refresh.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithWatch toggles filesystem watching for directory-backed sources.
func WithWatch(watch bool) Option {
	return func(s *Service) {
		s.watch = watch
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service reading from src.
func New(src source.Source, opts ...Option) *Service {
	s := &Service{
		src:    src,
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the aggregator, performs the first snapshot refresh in
// the background, and starts the optional watcher and refresh ticker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	// Fresh channel each start so a stopped service can be started again.
	s.stopCh = make(chan struct{})
	s.aggregator = aggregate.New(s.src, aggregate.WithLogger(s.logger))

	// First refresh runs off the startup path so the HTTP surface comes up
	// immediately; the dashboard shows its loading state until it lands.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Refresh(ctx)
	}()

	if s.watch {
		if fs, ok := s.src.(*source.FileSource); ok {
			w, err := source.NewWatcher(fs.Dir(), func() {
				s.logger.Info(ctx, "data changed; refreshing snapshot")
				s.Refresh(ctx)
			}, source.WithWatcherLogger(s.logger))
			if err != nil {
				return err
			}
			s.watcher = w
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				w.Run(ctx)
			}()
		} else {
			s.logger.Warn(ctx, "watch enabled but source is not directory-backed; ignoring")
		}
	}

	if s.refreshInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.refreshLoop(ctx)
		}()
	}

	s.started = true
	s.logger.Info(ctx, "score service started",
		logger.Int("explicitMonths", len(s.months)),
		logger.Any("refreshInterval", s.refreshInterval),
	)
	return nil
}

// Stop shuts down the watcher and background refreshes and waits for them.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	if s.watcher != nil {
		_ = s.watcher.Close()
	}

	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "score service stopped")
}

// refreshLoop refreshes the snapshot on a fixed interval.
func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// monthIDs resolves the month list: explicit configuration wins, otherwise
// the source manifest is consulted.
func (s *Service) monthIDs(ctx context.Context) ([]string, error) {
	if len(s.months) > 0 {
		return s.months, nil
	}
	manifest, err := s.src.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	return manifest.Months, nil
}

// Totals runs a fresh aggregation over the configured months. The returned
// map is owned by the caller; per-month failures are reported alongside and
// never abort the aggregation. The only error case is an unavailable
// manifest when no explicit month list is configured.
func (s *Service) Totals(ctx context.Context) (map[string]float64, []aggregate.Failure, error) {
	ids, err := s.monthIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	metrics.UpdateMonthsConfigured(len(ids))
	totals, failures := s.aggregator.Totals(ctx, ids)
	return totals, failures, nil
}

// Month loads a single month's data, passing source errors through.
func (s *Service) Month(ctx context.Context, id string) (model.Month, error) {
	return s.src.Month(ctx, id)
}

// Refresh recomputes the snapshot. Manifest failures keep the previous
// snapshot in place and are surfaced through LastError.
func (s *Service) Refresh(ctx context.Context) {
	start := time.Now()

	ids, err := s.monthIDs(ctx)
	if err != nil {
		s.logger.Warn(ctx, "snapshot refresh failed", logger.Error(err))
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return
	}

	metrics.UpdateMonthsConfigured(len(ids))
	totals, failures := s.aggregator.Totals(ctx, ids)

	snap := &Snapshot{
		Totals:      aggregate.Ranked(totals),
		Failures:    failures,
		Months:      len(ids),
		Loaded:      len(ids) - len(failures),
		RefreshedAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.lastErr = nil
	s.mu.Unlock()

	metrics.RecordSnapshotRefresh(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "snapshot refreshed",
		logger.Int("teams", len(snap.Totals)),
		logger.Int("monthsLoaded", snap.Loaded),
		logger.Int("monthsFailed", len(snap.Failures)),
	)
}

// Snapshot returns the last completed aggregation, if any.
func (s *Service) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

// LastError returns the most recent refresh error, or nil.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Stats summarizes the aggregation state for the stats endpoint. Counts
// describe the last completed snapshot; LastRefresh and LastError are empty
// until a refresh has run or failed.
type Stats struct {
	Started          bool   `json:"started"`
	Teams            int    `json:"teams"`
	MonthsConfigured int    `json:"months_configured"`
	MonthsLoaded     int    `json:"months_loaded"`
	MonthsFailed     int    `json:"months_failed"`
	LastRefresh      string `json:"last_refresh,omitempty"`
	LastError        string `json:"last_error,omitempty"`
}

// Stats reports the current aggregation state.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Started: s.started}
	if s.snapshot != nil {
		st.Teams = len(s.snapshot.Totals)
		st.MonthsConfigured = s.snapshot.Months
		st.MonthsLoaded = s.snapshot.Loaded
		st.MonthsFailed = len(s.snapshot.Failures)
		st.LastRefresh = s.snapshot.RefreshedAt.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}
