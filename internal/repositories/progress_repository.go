// file: internal/repositories/progress_repository.go
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/database"
	"picnicquest/internal/models"
)

// progressRepository implements ProgressRepository over Postgres.
// Commit atomicity comes from a transaction plus a version check on
// user_stats: a concurrent commit bumps the version and makes this
// commit report badges.ErrConflict so the caller can replay.
type progressRepository struct {
	*BaseRepository
}

// NewProgressRepository creates a new badge progress repository
func NewProgressRepository(db *database.Manager, logger *zap.Logger) ProgressRepository {
	return &progressRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// InitUser creates the empty stats row for a new user
func (r *progressRepository) InitUser(ctx context.Context, userID int64) error {
	_, err := r.ExecContext(ctx, `
		INSERT INTO user_stats (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("failed to init user stats: %w", err)
	}
	return nil
}

// Load returns the user's stats snapshot and badge progress rows
func (r *progressRepository) Load(ctx context.Context, userID int64) (*models.UserStats, []models.UserBadge, error) {
	stats, err := r.GetStats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if stats == nil {
		return nil, nil, badges.ErrUnknownUser
	}

	userBadges, err := r.GetBadges(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return stats, userBadges, nil
}

// GetStats returns the user's stats, or nil when no row exists
func (r *progressRepository) GetStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	query := `
		SELECT user_id, total_bookings, total_reviews, streak_days,
		       last_activity_date, spot_visits, version
		FROM user_stats
		WHERE user_id = $1`

	var (
		stats        models.UserStats
		lastActivity sql.NullTime
		spotVisits   []byte
	)
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID, &stats.TotalBookings, &stats.TotalReviews,
		&stats.StreakDays, &lastActivity, &spotVisits, &stats.Version,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	if lastActivity.Valid {
		date := lastActivity.Time.UTC()
		stats.LastActivityDate = &date
	}

	stats.SpotVisits = make(map[int64]int64)
	if len(spotVisits) > 0 {
		if err := json.Unmarshal(spotVisits, &stats.SpotVisits); err != nil {
			return nil, fmt.Errorf("failed to decode spot visits: %w", err)
		}
	}

	return &stats, nil
}

// GetBadges returns all badge progress rows for a user
func (r *progressRepository) GetBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	query := `
		SELECT user_id, badge_id, progress, completed, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY badge_id`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}
	defer rows.Close()

	var userBadges []models.UserBadge
	for rows.Next() {
		var ub models.UserBadge
		var earnedAt sql.NullTime
		if err := rows.Scan(
			&ub.UserID, &ub.BadgeID, &ub.Progress, &ub.Completed, &earnedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		if earnedAt.Valid {
			t := earnedAt.Time
			ub.EarnedAt = &t
		}
		userBadges = append(userBadges, ub)
	}

	return userBadges, rows.Err()
}

// CountCompleted returns the number of badges the user has earned
func (r *progressRepository) CountCompleted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_badges WHERE user_id = $1 AND completed`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed badges: %w", err)
	}
	return count, nil
}

// CommitAtomic writes the new stats snapshot and badge diffs in one
// transaction. The stats version must still match the loaded snapshot;
// otherwise nothing is written and badges.ErrConflict is returned.
func (r *progressRepository) CommitAtomic(ctx context.Context, userID int64, stats *models.UserStats, diffs []badges.BadgeDiff) error {
	spotVisits, err := json.Marshal(stats.SpotVisits)
	if err != nil {
		return fmt.Errorf("failed to encode spot visits: %w", err)
	}

	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE user_stats
			SET total_bookings = $1, total_reviews = $2, streak_days = $3,
			    last_activity_date = $4, spot_visits = $5,
			    version = version + 1, updated_at = NOW()
			WHERE user_id = $6 AND version = $7`,
			stats.TotalBookings, stats.TotalReviews, stats.StreakDays,
			stats.LastActivityDate, spotVisits, userID, stats.Version,
		)
		if err != nil {
			return fmt.Errorf("failed to update user stats: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check stats update: %w", err)
		}
		if affected == 0 {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM user_stats WHERE user_id = $1)`,
				userID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check user stats: %w", err)
			}
			if !exists {
				return badges.ErrUnknownUser
			}
			return badges.ErrConflict
		}

		for _, diff := range diffs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO user_badges (user_id, badge_id, progress, completed, earned_at)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (user_id, badge_id) DO UPDATE
				SET progress  = EXCLUDED.progress,
				    completed = user_badges.completed OR EXCLUDED.completed,
				    earned_at = COALESCE(user_badges.earned_at, EXCLUDED.earned_at)`,
				userID, diff.BadgeID, diff.Progress, diff.Completed, diff.EarnedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert badge progress: %w", err)
			}
		}

		return nil
	})
}
