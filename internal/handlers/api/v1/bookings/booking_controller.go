// file: internal/handlers/api/v1/bookings/booking_controller.go
package bookings

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

// BookingController handles picnic booking API endpoints
type BookingController struct {
	bookingService  services.BookingService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewBookingController creates a new booking API controller
func NewBookingController(bookingService services.BookingService, responseBuilder *response.Builder, logger *zap.Logger) *BookingController {
	return &BookingController{
		bookingService:  bookingService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Create books a picnic and reports any badges it unlocked
// POST /api/v1/bookings
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", nil))
		return
	}
	req.UserID = userID

	result, err := c.bookingService.Create(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), c.logger).Info("Booking created",
		zap.Int64("booking_id", result.Booking.ID),
		zap.Int("earned_badges", len(result.EarnedBadges)),
	)

	c.responseBuilder.WriteCreated(w, r, result)
}

// Get returns one booking
// GET /api/v1/bookings/{id}
func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid booking id", err))
		return
	}

	booking, err := c.bookingService.GetByID(ctx, id)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, booking)
}

// ListMine returns the caller's bookings, newest first
// GET /api/v1/bookings
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	params := response.ParsePagination(r)

	page, err := c.bookingService.ListByUser(ctx, userID, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, page)
}

// Delete cancels one of the caller's bookings. Earned badges stay.
// DELETE /api/v1/bookings/{id}
func (c *BookingController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid booking id", err))
		return
	}

	if err := c.bookingService.Delete(ctx, id, userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteNoContent(w, r)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
