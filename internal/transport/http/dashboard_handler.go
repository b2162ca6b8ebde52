package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
)

// DashboardHandler serves the aggregate views. Every endpoint recomputes
// from the canonical rows under the current filter; the handlers hold no
// state of their own.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/timeseries", h.GetTimeSeries)
	r.Get("/map", h.GetMap)
	r.Get("/scatter", h.GetScatter)
	r.Get("/insights", h.GetInsights)

	r.Route("/breakdown/{dimension}", func(r chi.Router) {
		r.Get("/", h.GetBreakdown)
	})

	return r
}

// GetDashboard returns every view in one payload.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dashboard)
}

// GetKPIs returns the scalar indicator set.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.service.KPIs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, kpis)
}

// GetTimeSeries returns the monthly sales/profit series.
func (h *DashboardHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.Monthly(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, series)
}

// GetBreakdown returns one grouped-sum view selected by path dimension.
func (h *DashboardHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")
	series, err := h.service.Breakdown(r.Context(), dimension)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, series)
}

// GetMap returns the geographic sales/profit rollup.
func (h *DashboardHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	states, err := h.service.Map(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, states)
}

// GetScatter returns the profit vs. base-margin projection.
func (h *DashboardHandler) GetScatter(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.Scatter(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, points)
}

// GetInsights returns the ranked highlights.
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, insights)
}
