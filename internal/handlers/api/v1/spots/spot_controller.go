// file: internal/handlers/api/v1/spots/spot_controller.go
package spots

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"picnicquest/internal/response"
	"picnicquest/internal/services"
)

const requestTimeout = 30 * time.Second

// SpotController exposes the picnic spot directory
type SpotController struct {
	spotService     services.SpotService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewSpotController creates a new spot API controller
func NewSpotController(spotService services.SpotService, responseBuilder *response.Builder, logger *zap.Logger) *SpotController {
	return &SpotController{
		spotService:     spotService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// List returns every active spot
// GET /api/v1/spots
func (c *SpotController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	spots, err := c.spotService.List(ctx)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, spots)
}

// Get returns one spot
// GET /api/v1/spots/{id}
func (c *SpotController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid spot id", err))
		return
	}

	spot, err := c.spotService.GetByID(ctx, id)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, spot)
}
