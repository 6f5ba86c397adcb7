// file: internal/services/service_collection.go
package services

import (
	"fmt"

	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/cache"
	"picnicquest/internal/config"
	"picnicquest/internal/events"
	"picnicquest/internal/repositories"
)

// ServiceCollection bundles all services for dependency injection
type ServiceCollection struct {
	Auth     AuthService
	Users    UserService
	Spots    SpotService
	Bookings BookingService
	Reviews  ReviewService
	Badges   BadgeService

	Engine *badges.Engine
	Bus    events.EventBus
	Cache  cache.Cache
}

// NewServiceCollection wires repositories, the award engine, the event
// bus and the cache into the service layer.
func NewServiceCollection(
	repos *repositories.Collection,
	cfg *config.Config,
	bus events.EventBus,
	c cache.Cache,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	if err != nil {
		return nil, fmt.Errorf("failed to build badge catalog: %w", err)
	}

	engine := badges.NewEngine(catalog, repos.Progress, logger, nil)

	return &ServiceCollection{
		Auth:     NewAuthService(repos.Users, repos.Progress, bus, &cfg.Auth, logger),
		Users:    NewUserService(repos.Users, logger),
		Spots:    NewSpotService(repos.Spots, logger),
		Bookings: NewBookingService(repos.Bookings, repos.Spots, engine, bus, logger),
		Reviews:  NewReviewService(repos.Reviews, repos.Spots, engine, bus, logger),
		Badges:   NewBadgeService(catalog, repos.Progress, c, bus, logger),
		Engine:   engine,
		Bus:      bus,
		Cache:    c,
	}, nil
}
