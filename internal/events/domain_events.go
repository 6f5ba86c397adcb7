// file: internal/events/domain_events.go
package events

import "time"

// Event type names used across the bus. Handlers subscribe by these
// constants rather than raw strings.
const (
	TypeUserRegistered  = "user.registered"
	TypeUserLoggedIn    = "user.logged_in"
	TypeBookingCreated  = "booking.created"
	TypeBookingCanceled = "booking.canceled"
	TypeReviewSubmitted = "review.submitted"
	TypeBadgeEarned     = "badge.earned"
)

// ===============================
// USER EVENTS
// ===============================

// UserRegisteredEvent is emitted when a new account is created
type UserRegisteredEvent struct {
	BaseEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(userID int64, username, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: newBaseEvent(TypeUserRegistered, &userID),
		Username:  username,
		Email:     email,
	}
}

// UserLoggedInEvent is emitted on a successful login
type UserLoggedInEvent struct {
	BaseEvent
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// NewUserLoggedInEvent creates a new user logged in event
func NewUserLoggedInEvent(userID int64, ipAddress, userAgent string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseEvent: newBaseEvent(TypeUserLoggedIn, &userID),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// ===============================
// BOOKING EVENTS
// ===============================

// BookingCreatedEvent is emitted after a booking is persisted
type BookingCreatedEvent struct {
	BaseEvent
	BookingID   int64     `json:"booking_id"`
	SpotID      *int64    `json:"spot_id,omitempty"`
	BookingDate time.Time `json:"booking_date"`
	People      int       `json:"people"`
}

// NewBookingCreatedEvent creates a new booking created event
func NewBookingCreatedEvent(bookingID, userID int64, spotID *int64, bookingDate time.Time, people int) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseEvent:   newBaseEvent(TypeBookingCreated, &userID),
		BookingID:   bookingID,
		SpotID:      spotID,
		BookingDate: bookingDate,
		People:      people,
	}
}

// BookingCanceledEvent is emitted when a booking is canceled
type BookingCanceledEvent struct {
	BaseEvent
	BookingID  int64     `json:"booking_id"`
	CanceledAt time.Time `json:"canceled_at"`
}

// NewBookingCanceledEvent creates a new booking canceled event
func NewBookingCanceledEvent(bookingID, userID int64) *BookingCanceledEvent {
	return &BookingCanceledEvent{
		BaseEvent:  newBaseEvent(TypeBookingCanceled, &userID),
		BookingID:  bookingID,
		CanceledAt: time.Now(),
	}
}

// ===============================
// REVIEW EVENTS
// ===============================

// ReviewSubmittedEvent is emitted after a review is persisted
type ReviewSubmittedEvent struct {
	BaseEvent
	ReviewID     int64  `json:"review_id"`
	LocationName string `json:"location_name"`
}

// NewReviewSubmittedEvent creates a new review submitted event
func NewReviewSubmittedEvent(reviewID, userID int64, locationName string) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseEvent:    newBaseEvent(TypeReviewSubmitted, &userID),
		ReviewID:     reviewID,
		LocationName: locationName,
	}
}

// ===============================
// BADGE EVENTS
// ===============================

// BadgeEarnedEvent is emitted once per newly awarded badge, after the
// award has been committed
type BadgeEarnedEvent struct {
	BaseEvent
	BadgeID   int64  `json:"badge_id"`
	BadgeName string `json:"badge_name"`
	Icon      string `json:"icon"`
	Level     int    `json:"level"`
}

// NewBadgeEarnedEvent creates a new badge earned event
func NewBadgeEarnedEvent(userID, badgeID int64, badgeName, icon string, level int) *BadgeEarnedEvent {
	return &BadgeEarnedEvent{
		BaseEvent: newBaseEvent(TypeBadgeEarned, &userID),
		BadgeID:   badgeID,
		BadgeName: badgeName,
		Icon:      icon,
		Level:     level,
	}
}
