// file: internal/handlers/api/v1/badges/badge_controller.go
package badges

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"picnicquest/internal/middleware"
	"picnicquest/internal/response"
	"picnicquest/internal/services"
)

const requestTimeout = 30 * time.Second

// BadgeController exposes the badge catalog and per-user progress
type BadgeController struct {
	badgeService    services.BadgeService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewBadgeController creates a new badge API controller
func NewBadgeController(badgeService services.BadgeService, responseBuilder *response.Builder, logger *zap.Logger) *BadgeController {
	return &BadgeController{
		badgeService:    badgeService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Catalog returns every badge definition
// GET /api/v1/badges
func (c *BadgeController) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	c.responseBuilder.WriteSuccess(w, r, c.badgeService.Catalog(ctx))
}

// Mine returns the caller's badge board
// GET /api/v1/badges/mine
func (c *BadgeController) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	summary, err := c.badgeService.GetUserBadges(ctx, userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, summary)
}

// UserBadges returns another user's badge board
// GET /api/v1/users/{id}/badges
func (c *BadgeController) UserBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid user id", err))
		return
	}

	summary, err := c.badgeService.GetUserBadges(ctx, userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, summary)
}

// MyStats returns the caller's activity counters and earned badge count
// GET /api/v1/badges/stats
func (c *BadgeController) MyStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	stats, err := c.badgeService.GetUserStats(ctx, userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, stats)
}
