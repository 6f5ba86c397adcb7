// file: internal/services/spot_service.go
package services

import (
	"context"

	"go.uber.org/zap"

	"picnicquest/internal/models"
	"picnicquest/internal/repositories"
)

// spotService implements SpotService
type spotService struct {
	spots  repositories.SpotRepository
	logger *zap.Logger
}

// NewSpotService creates a new spot service
func NewSpotService(spots repositories.SpotRepository, logger *zap.Logger) SpotService {
	return &spotService{spots: spots, logger: logger}
}

// GetByID returns one picnic spot
func (s *spotService) GetByID(ctx context.Context, id int64) (*models.Spot, error) {
	spot, err := s.spots.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to get spot")
	}
	if spot == nil {
		return nil, EntityNotFoundError("spot", id)
	}
	return spot, nil
}

// List returns all active picnic spots
func (s *spotService) List(ctx context.Context) ([]models.Spot, error) {
	spots, err := s.spots.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list spots")
	}
	return spots, nil
}
