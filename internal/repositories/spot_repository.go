// file: internal/repositories/spot_repository.go
package repositories

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"picnicquest/internal/database"
	"picnicquest/internal/models"
)

// spotRepository implements SpotRepository
type spotRepository struct {
	*BaseRepository
}

// NewSpotRepository creates a new spot repository
func NewSpotRepository(db *database.Manager, logger *zap.Logger) SpotRepository {
	return &spotRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new picnic spot
func (r *spotRepository) Create(ctx context.Context, spot *models.Spot) error {
	query := `
		INSERT INTO spots (name, landmark, description)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at`

	err := r.QueryRowContext(
		ctx, query,
		spot.Name, spot.Landmark, spot.Description,
	).Scan(&spot.ID, &spot.IsActive, &spot.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}

	return nil
}

// GetByID retrieves a spot by ID
func (r *spotRepository) GetByID(ctx context.Context, id int64) (*models.Spot, error) {
	query := `
		SELECT id, name, landmark, description, is_active, created_at
		FROM spots
		WHERE id = $1 AND is_active = true`

	var spot models.Spot
	err := r.QueryRowContext(ctx, query, id).Scan(
		&spot.ID, &spot.Name, &spot.Landmark, &spot.Description,
		&spot.IsActive, &spot.CreatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get spot by ID: %w", err)
	}

	return &spot, nil
}

// GetByName retrieves a spot by its unique name
func (r *spotRepository) GetByName(ctx context.Context, name string) (*models.Spot, error) {
	query := `
		SELECT id, name, landmark, description, is_active, created_at
		FROM spots
		WHERE name = $1 AND is_active = true`

	var spot models.Spot
	err := r.QueryRowContext(ctx, query, name).Scan(
		&spot.ID, &spot.Name, &spot.Landmark, &spot.Description,
		&spot.IsActive, &spot.CreatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get spot by name: %w", err)
	}

	return &spot, nil
}

// List returns all active spots
func (r *spotRepository) List(ctx context.Context) ([]models.Spot, error) {
	query := `
		SELECT id, name, landmark, description, is_active, created_at
		FROM spots
		WHERE is_active = true
		ORDER BY name`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}
	defer rows.Close()

	var spots []models.Spot
	for rows.Next() {
		var spot models.Spot
		if err := rows.Scan(
			&spot.ID, &spot.Name, &spot.Landmark, &spot.Description,
			&spot.IsActive, &spot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, spot)
	}

	return spots, rows.Err()
}
