// file: internal/services/booking_service.go
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

// earlyBirdHour is the cutoff for the early picnic condition: bookings
// whose picnic starts before this hour carry the condition.
const earlyBirdHour = 8

// maxBookingsPerDay caps how many picnics one user may book on the same
// calendar day.
const maxBookingsPerDay = 3

// bookingService implements BookingService
type bookingService struct {
	bookings repositories.BookingRepository
	spots    repositories.SpotRepository
	engine   *badges.Engine
	bus      events.EventBus
	validate *validator.Validate
	logger   *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	spots repositories.SpotRepository,
	engine *badges.Engine,
	bus events.EventBus,
	logger *zap.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		spots:    spots,
		engine:   engine,
		bus:      bus,
		validate: validator.New(),
		logger:   logger,
	}
}

// Create persists a booking, runs the award cycle for it and publishes
// the resulting events.
func (s *bookingService) Create(ctx context.Context, req *CreateBookingRequest) (*BookingResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid booking data", err)
	}
	if req.UserID <= 0 {
		return nil, NewUnauthorizedError("booking requires an authenticated user")
	}

	if req.SpotID != nil {
		spot, err := s.spots.GetByID(ctx, *req.SpotID)
		if err != nil {
			return nil, NewInternalError("failed to look up spot")
		}
		if spot == nil {
			return nil, EntityNotFoundError("spot", *req.SpotID)
		}
	}

	sameDay, err := s.bookings.CountForUserOnDate(ctx, req.UserID, req.Date)
	if err != nil {
		return nil, NewInternalError("failed to check existing bookings")
	}
	if sameDay >= maxBookingsPerDay {
		return nil, NewConflictError("daily booking limit reached", "DAILY_BOOKING_LIMIT")
	}

	booking := &models.Booking{
		UserID:  req.UserID,
		SpotID:  req.SpotID,
		Name:    req.Name,
		Date:    req.Date,
		People:  req.People,
		Payment: req.Payment,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, NewInternalError("failed to create booking")
	}

	earned := s.award(ctx, booking)

	if err := s.bus.PublishAsync(ctx, events.NewBookingCreatedEvent(
		booking.ID, booking.UserID, booking.SpotID, booking.Date, booking.People,
	)); err != nil {
		s.logger.Warn("Failed to publish booking created event", zap.Error(err))
	}

	return &BookingResult{Booking: booking, EarnedBadges: earned}, nil
}

// award runs the badge engine for a persisted booking. The booking
// itself survives an award failure; the failure is logged instead.
func (s *bookingService) award(ctx context.Context, booking *models.Booking) []models.Badge {
	ev := badges.Event{
		Kind:       badges.EventBookingCreated,
		UserID:     booking.UserID,
		RefID:      booking.ID,
		SpotID:     booking.SpotID,
		OccurredAt: booking.CreatedAt,
	}
	if booking.Date.Hour() < earlyBirdHour {
		ev.Conditions = append(ev.Conditions, badges.ConditionEarlyBird)
	}

	earned, err := s.engine.Handle(ctx, booking.UserID, ev)
	if err != nil {
		s.logger.Error("Badge award cycle failed for booking",
			zap.Int64("user_id", booking.UserID),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
		return nil
	}

	s.publishEarned(ctx, booking.UserID, earned)
	return earned
}

func (s *bookingService) publishEarned(ctx context.Context, userID int64, earned []models.Badge) {
	for _, badge := range earned {
		if err := s.bus.PublishAsync(ctx, events.NewBadgeEarnedEvent(
			userID, badge.ID, badge.Name, badge.Icon, badge.Level,
		)); err != nil {
			s.logger.Warn("Failed to publish badge earned event",
				zap.Int64("badge_id", badge.ID),
				zap.Error(err),
			)
		}
	}
}

// GetByID returns one booking
func (s *bookingService) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to get booking")
	}
	if booking == nil {
		return nil, EntityNotFoundError("booking", id)
	}
	return booking, nil
}

// ListByUser returns a page of the user's bookings
func (s *bookingService) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Booking], error) {
	page, err := s.bookings.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, NewInternalError("failed to list bookings")
	}
	return page, nil
}

// Delete cancels a booking. Earned badges are permanent, so deleting a
// booking never triggers a new award cycle.
func (s *bookingService) Delete(ctx context.Context, id, userID int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return NewInternalError("failed to get booking")
	}
	if booking == nil {
		return EntityNotFoundError("booking", id)
	}
	if booking.UserID != userID {
		return NewForbiddenError("booking belongs to another user")
	}

	if err := s.bookings.Delete(ctx, id, userID); err != nil {
		return NewInternalError("failed to delete booking")
	}

	if err := s.bus.PublishAsync(ctx, events.NewBookingCanceledEvent(id, userID)); err != nil {
		s.logger.Warn("Failed to publish booking canceled event", zap.Error(err))
	}

	return nil
}
