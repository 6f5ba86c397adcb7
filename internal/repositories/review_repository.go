// file: internal/repositories/review_repository.go
package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"picnicquest/internal/database"
	"picnicquest/internal/models"
)

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	*BaseRepository
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.Manager, logger *zap.Logger) ReviewRepository {
	return &reviewRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, spot_id, location_name, nearest_landmark, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at`

	err := r.QueryRowContext(
		ctx, query,
		review.UserID, review.SpotID, review.LocationName,
		review.NearestLandmark, review.Reason,
	).Scan(&review.ID, &review.SubmittedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
		)
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `
		SELECT id, user_id, spot_id, location_name, nearest_landmark, reason, submitted_at
		FROM reviews
		WHERE id = $1`

	var review models.Review
	err := r.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.UserID, &review.SpotID, &review.LocationName,
		&review.NearestLandmark, &review.Reason, &review.SubmittedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	return &review, nil
}

// ListByUser returns a page of the user's reviews, newest first
func (r *reviewRepository) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	return r.list(ctx, `WHERE user_id = $1`, []interface{}{userID}, params)
}

// ListRecent returns a page of all reviews, newest first
func (r *reviewRepository) ListRecent(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	return r.list(ctx, "", nil, params)
}

func (r *reviewRepository) list(ctx context.Context, where string, whereArgs []interface{}, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	params.Normalize()

	total, err := r.GetTotalCount(ctx, `SELECT COUNT(*) FROM reviews `+where, whereArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, spot_id, location_name, nearest_landmark, reason, submitted_at
		FROM reviews
		%s
		ORDER BY submitted_at DESC
		LIMIT $%d OFFSET $%d`, where, len(whereArgs)+1, len(whereArgs)+2)

	args := append(whereArgs, params.Limit, params.Offset)
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, params.Limit)
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID, &review.UserID, &review.SpotID, &review.LocationName,
			&review.NearestLandmark, &review.Reason, &review.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return &models.PaginatedResponse[models.Review]{
		Data:       reviews,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}
