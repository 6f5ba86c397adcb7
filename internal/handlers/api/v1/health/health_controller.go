// file: internal/handlers/api/v1/health/health_controller.go
package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/cache"
	"picnicquest/internal/database"
	"picnicquest/internal/events"
	"picnicquest/internal/response"
)

const checkTimeout = 5 * time.Second

// HealthController reports component health for probes
type HealthController struct {
	manager         *database.Manager
	cache           cache.Cache
	bus             events.EventBus
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(manager *database.Manager, c cache.Cache, bus events.EventBus, responseBuilder *response.Builder, logger *zap.Logger) *HealthController {
	return &HealthController{
		manager:         manager,
		cache:           c,
		bus:             bus,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Liveness reports that the process is up
// GET /health
func (c *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	c.responseBuilder.WriteSuccess(w, r, map[string]string{"status": "ok"})
}

// Readiness reports whether dependencies can serve traffic
// GET /health/ready
func (c *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	components := map[string]interface{}{}
	healthy := true

	dbStatus := c.manager.Health(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == database.StatusUnhealthy {
		healthy = false
	}

	if err := c.cache.Health(ctx); err != nil {
		components["cache"] = map[string]string{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		components["cache"] = map[string]string{"status": "healthy"}
	}

	if err := c.bus.Health(); err != nil {
		components["event_bus"] = map[string]string{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		components["event_bus"] = map[string]string{"status": "healthy"}
	}

	payload := map[string]interface{}{
		"status":     "ready",
		"components": components,
	}

	if !healthy {
		payload["status"] = "not_ready"
		c.responseBuilder.WriteServiceUnavailable(w, r, payload)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, payload)
}

// Metrics exposes database and event bus counters for debugging
// GET /health/metrics
func (c *HealthController) Metrics(w http.ResponseWriter, r *http.Request) {
	c.responseBuilder.WriteSuccess(w, r, map[string]interface{}{
		"database":  c.manager.Metrics(),
		"event_bus": c.bus.Stats(),
		"pool":      c.manager.Stats(),
	})
}
