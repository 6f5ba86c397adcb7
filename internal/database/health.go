// file: internal/database/health.go
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus describes the outcome of one health check.
type HealthStatus struct {
	Status       string                 `json:"status"`
	Timestamp    time.Time              `json:"timestamp"`
	ResponseTime time.Duration          `json:"response_time"`
	Errors       []string               `json:"errors,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// HealthChecker runs periodic connectivity and pool checks against the
// database and caches the latest result.
type HealthChecker struct {
	manager  *Manager
	logger   *zap.Logger
	interval time.Duration

	mu     sync.RWMutex
	latest *HealthStatus

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewHealthChecker creates a health checker for the given manager.
func NewHealthChecker(manager *Manager, interval time.Duration, logger *zap.Logger) *HealthChecker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HealthChecker{
		manager:  manager,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Check performs an immediate health check and caches the result.
func (h *HealthChecker) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Timestamp: time.Now(),
		Details:   make(map[string]interface{}),
	}

	start := time.Now()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.manager.db.PingContext(pingCtx); err != nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, fmt.Sprintf("ping failed: %v", err))
		status.ResponseTime = time.Since(start)
		h.store(status)
		return status
	}
	status.ResponseTime = time.Since(start)

	stats := h.manager.Stats()
	status.Details["open_connections"] = stats.OpenConnections
	status.Details["in_use"] = stats.InUse
	status.Details["idle"] = stats.Idle
	status.Details["wait_count"] = stats.WaitCount

	status.Status = StatusHealthy
	if stats.MaxOpenConnections > 0 && stats.OpenConnections >= stats.MaxOpenConnections*8/10 {
		status.Status = StatusDegraded
		status.Errors = append(status.Errors,
			fmt.Sprintf("connection pool near capacity: %d/%d", stats.OpenConnections, stats.MaxOpenConnections))
	}

	h.store(status)
	return status
}

// Latest returns the most recently cached status, or nil before the
// first check.
func (h *HealthChecker) Latest() *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// StartMonitoring begins periodic background checks.
func (h *HealthChecker) StartMonitoring() {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				status := h.Check(context.Background())
				if status.Status != StatusHealthy {
					h.logger.Warn("Database health degraded",
						zap.String("status", status.Status),
						zap.Strings("errors", status.Errors),
					)
				}
			case <-h.stopCh:
				return
			}
		}
	}()
}

// WaitForHealthy blocks until the database reports healthy or the
// timeout elapses.
func (h *HealthChecker) WaitForHealthy(ctx context.Context, timeout time.Duration) error {
	deadline, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	backoff := time.Second
	const maxBackoff = 10 * time.Second

	for {
		if h.Check(deadline).Status == StatusHealthy {
			return nil
		}

		select {
		case <-deadline.Done():
			return fmt.Errorf("timeout waiting for database health: %w", deadline.Err())
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// Stop halts background monitoring.
func (h *HealthChecker) Stop() {
	h.stopOnce.Do(func() { close(h.stopCh) })
}

func (h *HealthChecker) store(status *HealthStatus) {
	h.mu.Lock()
	h.latest = status
	h.mu.Unlock()
}
