// file: internal/services/review_service.go
package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/events"
	"picnicquest/internal/models"
	"picnicquest/internal/repositories"
)

// reviewService implements ReviewService
type reviewService struct {
	reviews  repositories.ReviewRepository
	spots    repositories.SpotRepository
	engine   *badges.Engine
	bus      events.EventBus
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviews repositories.ReviewRepository,
	spots repositories.SpotRepository,
	engine *badges.Engine,
	bus events.EventBus,
	logger *zap.Logger,
) ReviewService {
	return &reviewService{
		reviews:  reviews,
		spots:    spots,
		engine:   engine,
		bus:      bus,
		validate: validator.New(),
		logger:   logger,
	}
}

// Submit persists a review, runs the award cycle for it and publishes
// the resulting events.
func (s *reviewService) Submit(ctx context.Context, req *SubmitReviewRequest) (*ReviewResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid review data", err)
	}
	if req.UserID <= 0 {
		return nil, NewUnauthorizedError("review requires an authenticated user")
	}

	// Reviews may name locations outside the bookable catalog; a spot
	// link is attached only when the name matches a known spot.
	spotID := req.SpotID
	if spotID == nil {
		if spot, err := s.spots.GetByName(ctx, req.LocationName); err == nil && spot != nil {
			spotID = &spot.ID
		}
	}

	review := &models.Review{
		UserID:          req.UserID,
		SpotID:          spotID,
		LocationName:    req.LocationName,
		NearestLandmark: req.NearestLandmark,
		Reason:          req.Reason,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, NewInternalError("failed to create review")
	}

	earned := s.award(ctx, review)

	if err := s.bus.PublishAsync(ctx, events.NewReviewSubmittedEvent(
		review.ID, review.UserID, review.LocationName,
	)); err != nil {
		s.logger.Warn("Failed to publish review submitted event", zap.Error(err))
	}

	return &ReviewResult{Review: review, EarnedBadges: earned}, nil
}

// award runs the badge engine for a persisted review. The review
// itself survives an award failure; the failure is logged instead.
// Spot visits count bookings only, so the review's spot link is not
// carried on the event.
func (s *reviewService) award(ctx context.Context, review *models.Review) []models.Badge {
	ev := badges.Event{
		Kind:       badges.EventReviewSubmitted,
		UserID:     review.UserID,
		RefID:      review.ID,
		OccurredAt: review.SubmittedAt,
	}

	earned, err := s.engine.Handle(ctx, review.UserID, ev)
	if err != nil {
		s.logger.Error("Badge award cycle failed for review",
			zap.Int64("user_id", review.UserID),
			zap.Int64("review_id", review.ID),
			zap.Error(err),
		)
		return nil
	}

	for _, badge := range earned {
		if err := s.bus.PublishAsync(ctx, events.NewBadgeEarnedEvent(
			review.UserID, badge.ID, badge.Name, badge.Icon, badge.Level,
		)); err != nil {
			s.logger.Warn("Failed to publish badge earned event",
				zap.Int64("badge_id", badge.ID),
				zap.Error(err),
			)
		}
	}

	return earned
}

// GetByID returns one review
func (s *reviewService) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to get review")
	}
	if review == nil {
		return nil, EntityNotFoundError("review", id)
	}
	return review, nil
}

// ListByUser returns a page of the user's reviews
func (s *reviewService) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	page, err := s.reviews.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, NewInternalError("failed to list reviews")
	}
	return page, nil
}

// ListRecent returns a page of all reviews, newest first
func (s *reviewService) ListRecent(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	page, err := s.reviews.ListRecent(ctx, params)
	if err != nil {
		return nil, NewInternalError("failed to list reviews")
	}
	return page, nil
}
