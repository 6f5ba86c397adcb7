// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"picnicquest/internal/badges"
	"picnicquest/internal/models"
)

// UserRepository handles user persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateLastSeen(ctx context.Context, userID int64) error
	Deactivate(ctx context.Context, userID int64) error
	List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.User], error)
}

// SpotRepository handles picnic spot persistence
type SpotRepository interface {
	Create(ctx context.Context, spot *models.Spot) error
	GetByID(ctx context.Context, id int64) (*models.Spot, error)
	GetByName(ctx context.Context, name string) (*models.Spot, error)
	List(ctx context.Context) ([]models.Spot, error)
}

// BookingRepository handles booking persistence
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Booking], error)
	Delete(ctx context.Context, id, userID int64) error
	CountForUserOnDate(ctx context.Context, userID int64, day time.Time) (int64, error)
}

// ReviewRepository handles review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error)
	ListRecent(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error)
}

// ProgressRepository persists badge progress. It extends the award
// engine's store contract with initialization and read helpers.
type ProgressRepository interface {
	badges.ProgressStore

	InitUser(ctx context.Context, userID int64) error
	GetBadges(ctx context.Context, userID int64) ([]models.UserBadge, error)
	GetStats(ctx context.Context, userID int64) (*models.UserStats, error)
	CountCompleted(ctx context.Context, userID int64) (int64, error)
}

// Collection bundles all repositories for dependency injection
type Collection struct {
	Users    UserRepository
	Spots    SpotRepository
	Bookings BookingRepository
	Reviews  ReviewRepository
	Progress ProgressRepository
}
