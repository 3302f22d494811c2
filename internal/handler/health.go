package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"irportal/internal/httputil"
)

// HealthHandler reports whether the storage backend answers
type HealthHandler struct {
	backend string
	ping    func(ctx context.Context) error
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend string, ping func(ctx context.Context) error, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		ping:    ping,
		logger:  logger,
	}
}

// HealthCheck pings the store
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn("health check failed", "backend", h.backend, "error", err)
		httputil.RespondError(w, http.StatusServiceUnavailable, "storage backend unavailable")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
	})
}
