package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"salespulse/internal/services"
)

// HealthHandler answers liveness probes with the dataset status attached,
// so orchestration can tell a healthy-but-unloaded service from a broken
// one.
type HealthHandler struct {
	service DashboardServiceInterface
	started time.Time
	version string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service DashboardServiceInterface, version string) *HealthHandler {
	return &HealthHandler{
		service: service,
		started: time.Now(),
		version: version,
	}
}

// HealthResponse is the health payload.
type HealthResponse struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime"`
	Dataset services.DatasetStatus `json:"dataset"`
}

// GetHealth reports liveness. The service is "degraded" while the dataset
// is unavailable but the process itself is fine.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	dataset := h.service.Status()

	status := "ok"
	if !dataset.Loaded {
		status = "degraded"
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, HealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Dataset: dataset,
	})
}
