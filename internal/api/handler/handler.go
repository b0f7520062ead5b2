// Package handler provides HTTP handlers for all API endpoints.
// Handlers run the bracket resolution engine over in-memory tournament
// definitions. Every response is computed on demand or served from the
// TTL cache; nothing is read from or written to storage.
package handler

import (
	"net/http"
	"time"

	"github.com/prodeapp/engine/internal/api/respond"
	"github.com/prodeapp/engine/internal/cache"
	"github.com/prodeapp/engine/internal/config"
	"github.com/prodeapp/engine/internal/tournament"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	catalog *tournament.Catalog
	cache   *cache.Cache
	cfg     *config.Config
}

// New creates a Handler with shared dependencies.
func New(catalog *tournament.Catalog, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		catalog: catalog,
		cache:   c,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":        "Prode Bracket Engine",
		"version":     "1.0.0",
		"status":      "running",
		"docs":        "/docs",
		"tournaments": h.catalog.Len(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
