// file: internal/repositories/collection.go
package repositories

import (
	"go.uber.org/zap"

	"picnicquest/internal/database"
)

// NewCollection wires up every repository over one database manager
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		Users:    NewUserRepository(db, logger),
		Spots:    NewSpotRepository(db, logger),
		Bookings: NewBookingRepository(db, logger),
		Reviews:  NewReviewRepository(db, logger),
		Progress: NewProgressRepository(db, logger),
	}
}
