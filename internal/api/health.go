package api

import (
	"net/http"
	"time"

	"github.com/athuyarain/burme-mark/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler reports service and storage health.
type HealthHandler struct {
	kv      store.KV
	started time.Time
}

// NewHealthHandler creates a health handler over the persistence port.
func NewHealthHandler(kv store.KV) *HealthHandler {
	return &HealthHandler{kv: kv, started: time.Now()}
}

// RegisterHealth mounts the health route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/api/health", h.Health)
}

// Health returns service status plus a storage ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.kv.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	JSON(w, code, map[string]string{
		"status": status,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
