// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"picnicquest/internal/database"
	"picnicquest/internal/models"
)

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at, last_seen`

	err := r.QueryRowContext(
		ctx, query,
		user.Username, user.Email, user.Name, user.PasswordHash,
	).Scan(
		&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastSeen,
	)

	if err != nil {
		r.GetLogger().Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return nil
}

// GetByID retrieves a user by ID, including the earned badge count
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT
			u.id, u.username, u.email, u.name, u.password_hash,
			u.is_active, u.created_at, u.updated_at, u.last_seen,
			COALESCE(b.badge_count, 0) AS badge_count
		FROM users u
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS badge_count
			FROM user_badges WHERE completed
			GROUP BY user_id
		) b ON b.user_id = u.id
		WHERE u.id = $1 AND u.is_active = true`

	var user models.User
	err := r.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastSeen,
		&user.BadgeCount,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByField(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *userRepository) getByField(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, name, password_hash,
		       is_active, created_at, updated_at, last_seen
		FROM users
		WHERE %s = $1 AND is_active = true`, field)

	var user models.User
	err := r.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastSeen,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}

	return &user, nil
}

// UpdateProfile updates the mutable profile fields. Badge awards are
// keyed by user ID, so renames never touch earned badges.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, name = $3, updated_at = NOW()
		WHERE id = $4 AND is_active = true
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Username, user.Email, user.Name, user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("user %d not found", user.ID)
		}
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	return nil
}

// UpdateLastSeen bumps the last activity timestamp
func (r *userRepository) UpdateLastSeen(ctx context.Context, userID int64) error {
	_, err := r.ExecContext(ctx,
		`UPDATE users SET last_seen = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a user
func (r *userRepository) Deactivate(ctx context.Context, userID int64) error {
	result, err := r.ExecContext(ctx,
		`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// List returns a page of active users
func (r *userRepository) List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.User], error) {
	params.Normalize()

	total, err := r.GetTotalCount(ctx, `SELECT COUNT(*) FROM users WHERE is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT id, username, email, name, password_hash,
		       is_active, created_at, updated_at, last_seen
		FROM users
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, params.Limit)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.Name, &user.PasswordHash,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastSeen,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return &models.PaginatedResponse[models.User]{
		Data:       users,
		Pagination: r.BuildPaginationMeta(params, total),
	}, nil
}
