// file: internal/repositories/booking_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/database"
	"picnicquest/internal/models"
)

// bookingRepository implements BookingRepository
type bookingRepository struct {
	*BaseRepository
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *database.Manager, logger *zap.Logger) BookingRepository {
	return &bookingRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (user_id, spot_id, name, date, people, payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		booking.UserID, booking.SpotID, booking.Name,
		booking.Date, booking.People, booking.Payment,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `
		SELECT id, user_id, spot_id, name, date, people, payment, created_at
		FROM bookings
		WHERE id = $1`

	var booking models.Booking
	err := r.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.UserID, &booking.SpotID, &booking.Name,
		&booking.Date, &booking.People, &booking.Payment, &booking.CreatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}

	return &booking, nil
}

// ListByUser returns a page of the user's bookings, newest first
func (r *bookingRepository) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Booking], error) {
	params.Normalize()

	total, err := r.GetTotalCount(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `
		SELECT id, user_id, spot_id, name, date, people, payment, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0, params.Limit)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.SpotID, &booking.Name,
			&booking.Date, &booking.People, &booking.Payment, &booking.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return &models.PaginatedResponse[models.Booking]{
		Data:       bookings,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}

// Delete removes a booking owned by the given user
func (r *bookingRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.ExecContext(ctx,
		`DELETE FROM bookings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}

	return nil
}

// CountForUserOnDate counts the user's bookings on a calendar day
func (r *bookingRepository) CountForUserOnDate(ctx context.Context, userID int64, day time.Time) (int64, error) {
	var count int64
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND date::date = $2::date`,
		userID, day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for date: %w", err)
	}
	return count, nil
}
