package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger is the interface that wraps the database liveness check.
type Pinger interface {
	// Method PingContext verifies the database connection is alive.
	PingContext(ctx context.Context) error
}

// SessionCounter is the interface that wraps the live session count.
type SessionCounter interface {
	// Method Count returns the number of live sessions.
	Count() int
}

// HealthResponse is the body of the health check response
type HealthResponse struct {
	Status     string `json:"status" example:"ok"`
	Sessions   int    `json:"sessions"`
	AttemptLog string `json:"attemptLog" example:"disabled"` // "enabled", "disabled" or "unavailable"
}

// HealthHandler handles the liveness probe
type HealthHandler struct {
	BaseHandler
	sessions SessionCounter
	db       Pinger
}

// NewHealthHandler creates a new health handler. db is nil when the attempt log is disabled.
func NewHealthHandler(sessions SessionCounter, db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: BaseHandler{logger: logger},
		sessions:    sessions,
		db:          db,
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /health
// @Summary Health check
// @Description Report service liveness and attempt log availability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Sessions: h.sessions.Count(), AttemptLog: "disabled"}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp.AttemptLog = "enabled"
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("attempt log database is unavailable", zap.Error(err))
			resp.Status = "degraded"
			resp.AttemptLog = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	h.respondJSON(w, status, resp)
}
