package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/dataprocessing"
	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

type loaderFunc func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error)

func (f loaderFunc) Load(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
	return f(ctx, source, format)
}

func fixedLoader(rows []domain.Row) loaderFunc {
	return func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
		return rows, nil
	}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Broadcast(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testRows() []domain.Row {
	return []domain.Row{
		{
			OrderID:   "A",
			OrderDate: datePtr(2013, time.May, 1),
			Region:    "West", Segment: "Consumer", Category: "Furniture",
			SubCategory: "Chairs", State: "California", ShipMode: "Second Class",
			Sales: 100, Profit: 20,
		},
		{
			OrderID:   "B",
			OrderDate: datePtr(2014, time.June, 1),
			Region:    "East", Segment: "Corporate", Category: "Technology",
			SubCategory: "Phones", State: "Texas", ShipMode: "First Class",
			Sales: 50, Profit: 5,
		},
		{
			OrderID:   "C",
			OrderDate: datePtr(2016, time.July, 1),
			Region:    "West", Segment: "Consumer", Category: "Furniture",
			SubCategory: "Tables", State: "California", ShipMode: "Standard Class",
			Sales: 30, Profit: -3,
		},
	}
}

func newLoadedService(t *testing.T) *DashboardService {
	t.Helper()
	svc := NewDashboardService(fixedLoader(testRows()), "test.csv", dataprocessing.FormatCSV, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestLoadInitializesFilterToFullRange(t *testing.T) {
	svc := newLoadedService(t)

	filter := svc.Filter()
	assert.Equal(t, 2013, filter.YearFrom)
	assert.Equal(t, 2016, filter.YearTo)
	assert.Equal(t, "", filter.Region)

	status := svc.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, 3, status.Rows)
	assert.Empty(t, status.LastError)
}

func TestDashboardWithCategorySelector(t *testing.T) {
	svc := newLoadedService(t)
	require.NoError(t, svc.SetSelector(domain.DimensionCategory, "Furniture"))

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dash.FilteredRows)
	assert.Equal(t, 3, dash.TotalRows)
	assert.Equal(t, 130.0, dash.KPIs.TotalSales)
	require.Len(t, dash.SalesByRegion, 1)
	assert.Equal(t, "West", dash.SalesByRegion[0].Label)
}

func TestReadsBeforeLoadReportLoading(t *testing.T) {
	svc := NewDashboardService(fixedLoader(nil), "test.csv", dataprocessing.FormatCSV, nil)

	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrDatasetLoading)

	_, err = svc.KPIs(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrDatasetLoading)

	_, err = svc.Options()
	assert.ErrorIs(t, err, apierrors.ErrDatasetLoading)
}

func TestFailedLoadReportsUnavailable(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewDashboardService(loaderFunc(func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
		return nil, boom
	}), "test.csv", dataprocessing.FormatCSV, nil)

	err := svc.Load(context.Background())
	require.ErrorIs(t, err, apierrors.ErrDatasetUnavailable)

	_, err = svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrDatasetUnavailable)

	status := svc.Status()
	assert.False(t, status.Loaded)
	assert.Contains(t, status.LastError, "disk on fire")
}

func TestReloadRecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	svc := NewDashboardService(loaderFunc(func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
		if calls.Add(1) == 1 {
			return nil, fmt.Errorf("transient")
		}
		return testRows(), nil
	}), "test.csv", dataprocessing.FormatCSV, nil)

	require.Error(t, svc.Load(context.Background()))
	require.NoError(t, svc.Reload(context.Background()))

	status := svc.Status()
	assert.True(t, status.Loaded)
	assert.Empty(t, status.LastError)
	assert.Equal(t, 3, status.Rows)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	staleRows := []domain.Row{{OrderID: "stale", OrderDate: datePtr(2010, time.January, 1), Sales: 1}}
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	svc := NewDashboardService(loaderFunc(func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return staleRows, nil
		}
		return testRows(), nil
	}), "test.csv", dataprocessing.FormatCSV, nil)

	done := make(chan error, 1)
	go func() { done <- svc.Load(context.Background()) }()
	<-started

	// A newer load commits while the first is still in flight.
	require.NoError(t, svc.Load(context.Background()))
	close(release)
	require.NoError(t, <-done)

	status := svc.Status()
	assert.Equal(t, 3, status.Rows)

	filter := svc.Filter()
	assert.Equal(t, 2013, filter.YearFrom)
}

func TestRefreshKeepsSelectorsAndClampsYears(t *testing.T) {
	loads := [][]domain.Row{testRows(), testRows()[:2]}
	var calls atomic.Int32
	svc := NewDashboardService(loaderFunc(func(ctx context.Context, source string, format dataprocessing.Format) ([]domain.Row, error) {
		return loads[calls.Add(1)-1], nil
	}), "test.csv", dataprocessing.FormatCSV, nil)

	require.NoError(t, svc.Load(context.Background()))
	require.NoError(t, svc.SetSelector(domain.DimensionRegion, "West"))

	// Second dataset only spans 2013..2014, so the range tightens while
	// the selector survives.
	require.NoError(t, svc.Reload(context.Background()))

	filter := svc.Filter()
	assert.Equal(t, "West", filter.Region)
	assert.Equal(t, 2013, filter.YearFrom)
	assert.Equal(t, 2014, filter.YearTo)
}

func TestResetFiltersRestoresDefaults(t *testing.T) {
	svc := newLoadedService(t)
	require.NoError(t, svc.SetSelector(domain.DimensionRegion, "West"))
	require.NoError(t, svc.SetSelector(domain.DimensionShipMode, "First Class"))
	svc.SetYearRange(2014, 2015)

	svc.ResetFilters()

	filter := svc.Filter()
	assert.Equal(t, domain.FilterState{YearFrom: 2013, YearTo: 2016}, filter)
}

func TestSetSelectorUnknownDimension(t *testing.T) {
	svc := newLoadedService(t)

	err := svc.SetSelector(domain.FilterDimension("flavor"), "vanilla")
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNKNOWN_DIMENSION", apiErr.ErrorCode)
}

func TestSelectLabel(t *testing.T) {
	svc := newLoadedService(t)

	require.NoError(t, svc.SelectLabel(domain.DimensionCategory, "Furniture"))
	assert.Equal(t, "Furniture", svc.Filter().Category)

	// State is filterable but not chart-selectable.
	err := svc.SelectLabel(domain.DimensionState, "California")
	require.Error(t, err)
}

func TestBreakdownDimensions(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	for _, dim := range []string{"segment", "category", "region", "container", "sub-category"} {
		series, err := svc.Breakdown(ctx, dim)
		require.NoError(t, err, dim)
		assert.NotNil(t, series, dim)
	}

	_, err := svc.Breakdown(ctx, "flavor")
	require.Error(t, err)
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNKNOWN_DIMENSION", apiErr.ErrorCode)
}

func TestNotifierReceivesLifecycleEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewDashboardService(fixedLoader(testRows()), "test.csv", dataprocessing.FormatCSV, nil).
		WithNotifier(notifier)

	require.NoError(t, svc.Load(context.Background()))
	require.NoError(t, svc.SetSelector(domain.DimensionRegion, "West"))
	svc.ResetFilters()

	assert.Equal(t, []string{
		EventDatasetLoaded,
		EventFiltersChanged,
		EventFiltersChanged,
	}, notifier.Events())
}

func TestViewsAgreeWithDashboard(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	kpis, err := svc.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, dash.KPIs, kpis)

	monthly, err := svc.Monthly(ctx)
	require.NoError(t, err)
	assert.Equal(t, dash.Monthly, monthly)

	states, err := svc.Map(ctx)
	require.NoError(t, err)
	assert.Equal(t, dash.SalesByState, states)

	scatter, err := svc.Scatter(ctx)
	require.NoError(t, err)
	assert.Equal(t, dash.Scatter, scatter)

	insights, err := svc.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, dash.Insights, insights)
}
