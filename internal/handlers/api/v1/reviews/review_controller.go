// file: internal/handlers/api/v1/reviews/review_controller.go
package reviews

import (
	"context"
	"encoding/json"
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

// ReviewController handles location review API endpoints
type ReviewController struct {
	reviewService   services.ReviewService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewReviewController creates a new review API controller
func NewReviewController(reviewService services.ReviewService, responseBuilder *response.Builder, logger *zap.Logger) *ReviewController {
	return &ReviewController{
		reviewService:   reviewService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Submit records a review and reports any badges it unlocked
// POST /api/v1/reviews
func (c *ReviewController) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	var req services.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", nil))
		return
	}
	req.UserID = userID

	result, err := c.reviewService.Submit(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), c.logger).Info("Review submitted",
		zap.Int64("review_id", result.Review.ID),
		zap.Int("earned_badges", len(result.EarnedBadges)),
	)

	c.responseBuilder.WriteCreated(w, r, result)
}

// Get returns one review
// GET /api/v1/reviews/{id}
func (c *ReviewController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid review id", err))
		return
	}

	review, err := c.reviewService.GetByID(ctx, id)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, review)
}

// ListMine returns the caller's reviews, newest first
// GET /api/v1/reviews/mine
func (c *ReviewController) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	params := response.ParsePagination(r)

	page, err := c.reviewService.ListByUser(ctx, userID, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, page)
}

// ListRecent returns recent reviews across all users
// GET /api/v1/reviews
func (c *ReviewController) ListRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	params := response.ParsePagination(r)

	page, err := c.reviewService.ListRecent(ctx, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, page)
}
