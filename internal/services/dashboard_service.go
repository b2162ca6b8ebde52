package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"salespulse/internal/analytics"
	"salespulse/internal/dataprocessing"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// RowLoader abstracts the ingestion step so tests can feed rows directly.
type RowLoader interface {
	Load(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error)
}

// Notifier receives change events for push delivery to render clients.
// The websocket hub implements it; a nil notifier is a no-op.
type Notifier interface {
	Broadcast(event string)
}

// Change events emitted through the Notifier.
const (
	EventFiltersChanged = "filters_changed"
	EventDatasetLoaded  = "dataset_loaded"
	EventDatasetFailed  = "dataset_failed"
)

// DatasetStatus is the health read surface for the dataset lifecycle.
type DatasetStatus struct {
	Loaded     bool      `json:"loaded"`
	Rows       int       `json:"rows"`
	LastError  string    `json:"last_error,omitempty"`
	LoadedAt   time.Time `json:"loaded_at,omitempty"`
	Generation int64     `json:"generation"`
}

// DashboardService owns the session state: the canonical row collection and
// the current filter. Every view read recomputes from the rows; the only
// cached derivation is the filter options, computed once per committed load
// over the full dataset.
//
// Loads are guarded by a generation counter: a fetch commits its rows only
// if no newer load has started since, so a stale in-flight fetch can never
// overwrite fresher state.
type DashboardService struct {
	logger    *slog.Logger
	loader    RowLoader
	telemetry *infrastructure.Telemetry
	notifier  Notifier
	source    string
	format    dataprocessing.Format

	gen     atomic.Int64
	reloads singleflight.Group

	mu       sync.RWMutex
	rows     []domain.Row
	options  domain.FilterOptions
	filter   domain.FilterState
	loaded   bool
	loadErr  error
	loadedAt time.Time
}

// NewDashboardService creates the service. Telemetry and notifier may be
// nil.
func NewDashboardService(loader RowLoader, source string, format dataprocessing.Format, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		logger: logger.With(slog.String("component", "dashboard_service")),
		loader: loader,
		source: source,
		format: format,
	}
}

// WithTelemetry attaches load/row instruments.
func (s *DashboardService) WithTelemetry(t *infrastructure.Telemetry) *DashboardService {
	s.telemetry = t
	return s
}

// WithNotifier attaches a change-event receiver.
func (s *DashboardService) WithNotifier(n Notifier) *DashboardService {
	s.notifier = n
	return s
}

// Load ingests the dataset. The generation taken at the start decides
// whether the result may commit: if another load started in the meantime,
// the fetched rows are dropped and the newer load wins.
func (s *DashboardService) Load(ctx context.Context) error {
	gen := s.gen.Add(1)
	start := time.Now()

	rows, err := s.loader.Load(ctx, s.source, s.format)
	s.telemetry.RecordLoad(ctx, len(rows), time.Since(start), err)

	s.mu.Lock()
	if gen != s.gen.Load() {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "discarding stale dataset load",
			slog.Int64("generation", gen),
			slog.Int64("current", s.gen.Load()))
		return nil
	}

	if err != nil {
		s.loadErr = err
		if !s.loaded {
			// Keep nothing: downstream must see "failed to load", not
			// empty aggregates.
			s.rows = nil
		}
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("source", s.source),
			slog.String("error", err.Error()))
		s.broadcast(EventDatasetFailed)
		return fmt.Errorf("%w: %v", apierrors.ErrDatasetUnavailable, err)
	}

	firstLoad := !s.loaded
	s.rows = rows
	s.options = analytics.BuildFilterOptions(rows)
	s.loaded = true
	s.loadErr = nil
	s.loadedAt = time.Now()
	if firstLoad {
		s.filter = domain.FilterState{
			YearFrom: s.options.MinYear,
			YearTo:   s.options.MaxYear,
		}
	} else {
		// Refresh keeps the session's selectors but the option sets and
		// default bounds follow the new data.
		s.clampYearsLocked()
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset committed",
		slog.Int("rows", len(rows)),
		slog.Int64("generation", gen),
		slog.Bool("first_load", firstLoad))
	s.broadcast(EventDatasetLoaded)
	return nil
}

// Reload re-ingests the dataset, deduplicating concurrent requests.
func (s *DashboardService) Reload(ctx context.Context) error {
	_, err, _ := s.reloads.Do("reload", func() (interface{}, error) {
		return nil, s.Load(ctx)
	})
	return err
}

func (s *DashboardService) clampYearsLocked() {
	lo, hi := s.filter.YearBounds()
	if lo < s.options.MinYear {
		lo = s.options.MinYear
	}
	if hi > s.options.MaxYear {
		hi = s.options.MaxYear
	}
	s.filter.YearFrom, s.filter.YearTo = lo, hi
}

func (s *DashboardService) broadcast(event string) {
	if s.notifier != nil {
		s.notifier.Broadcast(event)
	}
}

// ready reports whether reads may proceed, returning the distinct
// dataset-unavailable error when they may not.
func (s *DashboardService) readyLocked() error {
	if s.loaded {
		return nil
	}
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrDatasetUnavailable, s.loadErr)
	}
	return apierrors.ErrDatasetLoading
}

// Status reports the dataset lifecycle state for health checks.
func (s *DashboardService) Status() DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := DatasetStatus{
		Loaded:     s.loaded,
		Rows:       len(s.rows),
		LoadedAt:   s.loadedAt,
		Generation: s.gen.Load(),
	}
	if s.loadErr != nil {
		status.LastError = s.loadErr.Error()
	}
	return status
}

// Filter returns the current filter state.
func (s *DashboardService) Filter() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Options returns the filter read surface (distinct values, year bounds).
func (s *DashboardService) Options() (domain.FilterOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return domain.FilterOptions{}, err
	}
	return s.options, nil
}

// SetSelector sets one categorical selector. An empty value clears the
// constraint.
func (s *DashboardService) SetSelector(dim domain.FilterDimension, value string) error {
	s.mu.Lock()
	next, ok := s.filter.WithSelector(dim, value)
	if !ok {
		s.mu.Unlock()
		return apierrors.NewWithDetails(http.StatusBadRequest, "UNKNOWN_DIMENSION", "Unknown filter dimension", string(dim))
	}
	s.filter = next
	s.mu.Unlock()

	s.broadcast(EventFiltersChanged)
	return nil
}

// SetYearRange sets the inclusive year range. Bounds may arrive in either
// order; reads normalize them.
func (s *DashboardService) SetYearRange(from, to int) {
	s.mu.Lock()
	s.filter.YearFrom = from
	s.filter.YearTo = to
	s.mu.Unlock()

	s.broadcast(EventFiltersChanged)
}

// ResetFilters clears every categorical selector and restores the year
// range to the full dataset bounds.
func (s *DashboardService) ResetFilters() {
	s.mu.Lock()
	s.filter = domain.FilterState{
		YearFrom: s.options.MinYear,
		YearTo:   s.options.MaxYear,
	}
	s.mu.Unlock()

	s.broadcast(EventFiltersChanged)
}

// SelectLabel is the reverse channel from the rendering layer: a clicked
// chart label becomes a direct selector mutation. Only the charted
// dimensions region, segment and category participate.
func (s *DashboardService) SelectLabel(dim domain.FilterDimension, label string) error {
	switch dim {
	case domain.DimensionRegion, domain.DimensionSegment, domain.DimensionCategory:
		return s.SetSelector(dim, label)
	}
	return apierrors.NewWithDetails(http.StatusBadRequest, "UNKNOWN_DIMENSION", "Dimension is not selectable", string(dim))
}

// Dashboard recomputes every aggregate view for the current filter.
func (s *DashboardService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return domain.Dashboard{}, err
	}
	return analytics.BuildDashboard(s.rows, s.filter), nil
}

// filtered returns the filtered rows for the current state. Callers hold no
// lock; the row slice is never mutated after commit.
func (s *DashboardService) filtered() ([]domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return analytics.Apply(s.rows, s.filter), nil
}

// KPIs recomputes the scalar indicators.
func (s *DashboardService) KPIs(ctx context.Context) (domain.KPISet, error) {
	rows, err := s.filtered()
	if err != nil {
		return domain.KPISet{}, err
	}
	return analytics.ComputeKPIs(rows), nil
}

// Monthly recomputes the monthly time series.
func (s *DashboardService) Monthly(ctx context.Context) (domain.MonthlySeries, error) {
	rows, err := s.filtered()
	if err != nil {
		return domain.MonthlySeries{}, err
	}
	return analytics.MonthlySeries(rows), nil
}

// Breakdown recomputes one grouped-sum view by name.
func (s *DashboardService) Breakdown(ctx context.Context, dimension string) ([]domain.SeriesPoint, error) {
	rows, err := s.filtered()
	if err != nil {
		return nil, err
	}
	switch dimension {
	case "segment":
		return analytics.SalesBySegment(rows), nil
	case "category":
		return analytics.SalesByCategory(rows), nil
	case "region":
		return analytics.SalesByRegion(rows), nil
	case "container":
		return analytics.SalesByContainer(rows), nil
	case "sub-category":
		return analytics.ProfitBySubCategory(rows), nil
	}
	return nil, apierrors.NewWithDetails(http.StatusBadRequest, "UNKNOWN_DIMENSION", "Unknown breakdown dimension", dimension)
}

// Map recomputes the geographic rollup.
func (s *DashboardService) Map(ctx context.Context) ([]domain.StateMetric, error) {
	rows, err := s.filtered()
	if err != nil {
		return nil, err
	}
	return analytics.SalesProfitByState(rows), nil
}

// Scatter recomputes the profit vs. base-margin projection.
func (s *DashboardService) Scatter(ctx context.Context) ([]domain.ScatterPoint, error) {
	rows, err := s.filtered()
	if err != nil {
		return nil, err
	}
	return analytics.Scatter(rows), nil
}

// Insights recomputes the ranked highlights.
func (s *DashboardService) Insights(ctx context.Context) ([]domain.Insight, error) {
	rows, err := s.filtered()
	if err != nil {
		return nil, err
	}
	return analytics.Insights(rows), nil
}
