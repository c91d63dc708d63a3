package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bar-comandas/web/internal/probe"
)

const version = "1.0.0"

// StatusReporter exposes the last backend probe result
type StatusReporter interface {
	Status() probe.Status
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	backend StatusReporter
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend StatusReporter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Backend   probe.Status `json:"backend"`
}

// ServeHTTP handles health check requests. The server stays healthy while the
// API is down; the backend field says so.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version,
		Backend:   h.backend.Status(),
	}
	if !response.Backend.Reachable {
		response.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, response, h.logger)
}
