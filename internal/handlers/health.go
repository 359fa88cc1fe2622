package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"promptforge/internal/contextutil"
	"promptforge/internal/enhancer"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db      *sql.DB
	cache   *enhancer.Cache
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, cache *enhancer.Cache) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		timeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp time.Time `json:"timestamp"`

	// Database reachability
	Database string `json:"database"`

	// Number of live enhancement cache entries
	CacheEntries int `json:"cacheEntries"`
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Database:     "ok",
		CacheEntries: h.cache.Len(),
	}

	status := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "database ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
