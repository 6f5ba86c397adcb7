// file: internal/services/types.go
package services

import (
	"time"

	"picnicquest/internal/models"
)

// ===============================
// AUTH DTOS
// ===============================

// RegisterRequest carries new account data
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries login credentials. Identifier is a username or
// an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful register or login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UpdateProfileRequest carries profile changes
type UpdateProfileRequest struct {
	UserID   int64  `json:"-"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Name     string `json:"name" validate:"required,max=100"`
}

// ===============================
// BOOKING DTOS
// ===============================

// CreateBookingRequest carries a new booking
type CreateBookingRequest struct {
	UserID  int64     `json:"-"`
	SpotID  *int64    `json:"spot_id,omitempty"`
	Name    string    `json:"name" validate:"required,max=100"`
	Date    time.Time `json:"date" validate:"required"`
	People  int       `json:"people" validate:"required,min=1,max=100"`
	Payment float64   `json:"payment" validate:"min=0"`
}

// BookingResult is the outcome of creating a booking, including any
// badges the booking unlocked.
type BookingResult struct {
	Booking      *models.Booking `json:"booking"`
	EarnedBadges []models.Badge  `json:"earned_badges,omitempty"`
}

// ===============================
// REVIEW DTOS
// ===============================

// SubmitReviewRequest carries a new review
type SubmitReviewRequest struct {
	UserID          int64  `json:"-"`
	SpotID          *int64 `json:"spot_id,omitempty"`
	LocationName    string `json:"location_name" validate:"required,max=150"`
	NearestLandmark string `json:"nearest_landmark" validate:"required,max=150"`
	Reason          string `json:"reason" validate:"required,max=2000"`
}

// ReviewResult is the outcome of submitting a review, including any
// badges the review unlocked.
type ReviewResult struct {
	Review       *models.Review `json:"review"`
	EarnedBadges []models.Badge `json:"earned_badges,omitempty"`
}

// ===============================
// BADGE DTOS
// ===============================

// BadgeProgress pairs a catalog badge with the user's progress on it
type BadgeProgress struct {
	Badge     models.Badge `json:"badge"`
	Progress  int64        `json:"progress"`
	Required  int64        `json:"required"`
	Completed bool         `json:"completed"`
	EarnedAt  *time.Time   `json:"earned_at,omitempty"`
}

// UserBadgeSummary is the full badge board for one user
type UserBadgeSummary struct {
	Badges      []BadgeProgress   `json:"badges"`
	EarnedCount int               `json:"earned_count"`
	TotalCount  int               `json:"total_count"`
	Stats       *models.UserStats `json:"stats,omitempty"`
}

// UserStatsSummary pairs the activity counters with the number of
// badges the user has earned
type UserStatsSummary struct {
	Stats        *models.UserStats `json:"stats"`
	EarnedBadges int64             `json:"earned_badges"`
}
