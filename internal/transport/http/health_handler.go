package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	version   string
	startedAt time.Time
	readiness func() error
}

// NewHealthHandler creates a health handler. readiness may be nil when
// there is nothing beyond process liveness to check.
func NewHealthHandler(version string, readiness func() error) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
		readiness: readiness,
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetHealth)
	r.Get("/ready", h.GetReady)

	return r
}

// GetHealth returns basic liveness status.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
	})
}

// GetReady checks the dataset can be served. A missing dataset file is
// still ready (it serves as an empty table); only a broken one is not.
func (h *HealthHandler) GetReady(w http.ResponseWriter, r *http.Request) {
	if h.readiness != nil {
		if err := h.readiness(); err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]interface{}{
				"status": "unavailable",
				"reason": err.Error(),
			})
			return
		}
	}
	render.JSON(w, r, map[string]interface{}{"status": "ready"})
}
