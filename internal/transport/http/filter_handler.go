package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// FilterHandler exposes the filter mutation surface and its read surface.
type FilterHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewFilterHandler creates a filter handler.
func NewFilterHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FilterHandler {
	return &FilterHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "filter_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the filter routes.
func (h *FilterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetFilters)
	r.Put("/", h.UpdateFilters)
	r.Post("/reset", h.ResetFilters)
	r.Post("/select", h.SelectLabel)

	return r
}

// FilterStateResponse bundles the current state with the option sets the
// controls are built from.
type FilterStateResponse struct {
	State   domain.FilterState   `json:"state"`
	Options domain.FilterOptions `json:"options"`
}

// FilterUpdateRequest is a partial update: only present fields mutate the
// state. An empty string clears a selector.
type FilterUpdateRequest struct {
	Region   *string `json:"region"`
	Segment  *string `json:"segment"`
	Category *string `json:"category"`
	State    *string `json:"state"`
	ShipMode *string `json:"ship_mode"`
	YearFrom *int    `json:"year_from" validate:"omitempty,gte=1000,lte=9999"`
	YearTo   *int    `json:"year_to" validate:"omitempty,gte=1000,lte=9999"`
}

// SelectRequest is the reverse channel payload: a chart click reported by
// the rendering layer.
type SelectRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=region segment category"`
	Label     string `json:"label" validate:"required"`
}

// GetFilters returns the current filter state plus the options read
// surface.
func (h *FilterHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, FilterStateResponse{
		State:   h.service.Filter(),
		Options: options,
	})
}

// UpdateFilters applies a partial filter mutation.
func (h *FilterHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req FilterUpdateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	selectors := []struct {
		dim   domain.FilterDimension
		value *string
	}{
		{domain.DimensionRegion, req.Region},
		{domain.DimensionSegment, req.Segment},
		{domain.DimensionCategory, req.Category},
		{domain.DimensionState, req.State},
		{domain.DimensionShipMode, req.ShipMode},
	}
	for _, sel := range selectors {
		if sel.value == nil {
			continue
		}
		if err := h.service.SetSelector(sel.dim, *sel.value); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}

	if req.YearFrom != nil || req.YearTo != nil {
		current := h.service.Filter()
		from, to := current.YearFrom, current.YearTo
		if req.YearFrom != nil {
			from = *req.YearFrom
		}
		if req.YearTo != nil {
			to = *req.YearTo
		}
		h.service.SetYearRange(from, to)
	}

	render.JSON(w, r, h.service.Filter())
}

// ResetFilters clears every selector and restores the full year range.
func (h *FilterHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.service.ResetFilters()
	render.JSON(w, r, h.service.Filter())
}

// SelectLabel handles a chart click from the rendering layer: the selected
// label becomes a direct selector mutation.
func (h *FilterHandler) SelectLabel(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.service.SelectLabel(domain.FilterDimension(req.Dimension), req.Label); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "label selected",
		slog.String("dimension", req.Dimension),
		slog.String("label", req.Label))
	render.JSON(w, r, h.service.Filter())
}
