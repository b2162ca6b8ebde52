package http

import (
	"context"

	"salespulse/internal/services"
	"salespulse/pkg/contracts/domain"
)

// DashboardServiceInterface is what the handlers need from the service
// layer; tests substitute a mock.
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
	KPIs(ctx context.Context) (domain.KPISet, error)
	Monthly(ctx context.Context) (domain.MonthlySeries, error)
	Breakdown(ctx context.Context, dimension string) ([]domain.SeriesPoint, error)
	Map(ctx context.Context) ([]domain.StateMetric, error)
	Scatter(ctx context.Context) ([]domain.ScatterPoint, error)
	Insights(ctx context.Context) ([]domain.Insight, error)

	Filter() domain.FilterState
	Options() (domain.FilterOptions, error)
	SetSelector(dim domain.FilterDimension, value string) error
	SetYearRange(from, to int)
	ResetFilters()
	SelectLabel(dim domain.FilterDimension, label string) error

	Reload(ctx context.Context) error
	Status() services.DatasetStatus
}
