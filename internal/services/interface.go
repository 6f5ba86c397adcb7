// file: internal/services/interface.go
package services

import (
	"context"

	"picnicquest/internal/models"
)

// AuthService handles registration, login and token validation
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// UserService handles user profiles
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error)
	Deactivate(ctx context.Context, userID int64) error
	List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.User], error)
}

// BookingService handles picnic bookings and triggers badge awards
type BookingService interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*BookingResult, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Booking], error)
	Delete(ctx context.Context, id, userID int64) error
}

// ReviewService handles location reviews and triggers badge awards
type ReviewService interface {
	Submit(ctx context.Context, req *SubmitReviewRequest) (*ReviewResult, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error)
	ListRecent(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error)
}

// SpotService handles picnic spots
type SpotService interface {
	GetByID(ctx context.Context, id int64) (*models.Spot, error)
	List(ctx context.Context) ([]models.Spot, error)
}

// BadgeService exposes the badge catalog and per-user progress
type BadgeService interface {
	Catalog(ctx context.Context) []models.Badge
	GetUserBadges(ctx context.Context, userID int64) (*UserBadgeSummary, error)
	GetUserStats(ctx context.Context, userID int64) (*UserStatsSummary, error)
}
