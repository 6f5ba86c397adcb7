// file: internal/router/router.go
package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"picnicquest/internal/cache"
	"picnicquest/internal/database"
	"picnicquest/internal/events"
	"picnicquest/internal/handlers/api/v1/auth"
	"picnicquest/internal/handlers/api/v1/badges"
	"picnicquest/internal/handlers/api/v1/bookings"
	"picnicquest/internal/handlers/api/v1/health"
	"picnicquest/internal/handlers/api/v1/reviews"
	"picnicquest/internal/handlers/api/v1/spots"
	"picnicquest/internal/handlers/api/v1/users"
	"picnicquest/internal/handlers/ws"
	"picnicquest/internal/middleware"
	"picnicquest/internal/response"
	"picnicquest/internal/services"
)

// Dependencies bundles everything the router needs
type Dependencies struct {
	Services *services.ServiceCollection
	Manager  *database.Manager
	Cache    cache.Cache
	Bus      events.EventBus
	Logger   *zap.Logger

	// MaskInternalErrors hides 5xx details from clients
	MaskInternalErrors bool
}

// New builds the full HTTP handler with middleware and all API routes
func New(deps *Dependencies) (http.Handler, error) {
	responseBuilder := response.NewBuilder(deps.Logger, deps.MaskInternalErrors)

	authController := auth.NewAuthController(deps.Services.Auth, responseBuilder, deps.Logger)
	userController := users.NewUserController(deps.Services.Users, responseBuilder, deps.Logger)
	spotController := spots.NewSpotController(deps.Services.Spots, responseBuilder, deps.Logger)
	bookingController := bookings.NewBookingController(deps.Services.Bookings, responseBuilder, deps.Logger)
	reviewController := reviews.NewReviewController(deps.Services.Reviews, responseBuilder, deps.Logger)
	badgeController := badges.NewBadgeController(deps.Services.Badges, responseBuilder, deps.Logger)
	healthController := health.NewHealthController(deps.Manager, deps.Cache, deps.Bus, responseBuilder, deps.Logger)

	hub, err := ws.NewHub(deps.Bus, deps.Logger)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// ===============================
	// HEALTH ENDPOINTS
	// ===============================

	r.HandleFunc("/health", healthController.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", healthController.Readiness).Methods(http.MethodGet)
	r.HandleFunc("/health/metrics", healthController.Metrics).Methods(http.MethodGet)

	// ===============================
	// PUBLIC API ENDPOINTS
	// ===============================

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authController.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authController.Login).Methods(http.MethodPost)

	api.HandleFunc("/spots", spotController.List).Methods(http.MethodGet)
	api.HandleFunc("/spots/{id:[0-9]+}", spotController.Get).Methods(http.MethodGet)

	api.HandleFunc("/badges", badgeController.Catalog).Methods(http.MethodGet)
	api.HandleFunc("/reviews", reviewController.ListRecent).Methods(http.MethodGet)

	// ===============================
	// AUTHENTICATED API ENDPOINTS
	// ===============================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(deps.Services.Auth, deps.Logger))

	protected.HandleFunc("/users/me", userController.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", userController.UpdateMe).Methods(http.MethodPut)
	protected.HandleFunc("/users/me", userController.DeactivateMe).Methods(http.MethodDelete)
	protected.HandleFunc("/users", userController.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}/badges", badgeController.UserBadges).Methods(http.MethodGet)

	protected.HandleFunc("/bookings", bookingController.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", bookingController.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", bookingController.Get).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", bookingController.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/reviews", reviewController.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/mine", reviewController.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{id:[0-9]+}", reviewController.Get).Methods(http.MethodGet)

	protected.HandleFunc("/badges/mine", badgeController.Mine).Methods(http.MethodGet)
	protected.HandleFunc("/badges/stats", badgeController.MyStats).Methods(http.MethodGet)

	protected.HandleFunc("/ws/notifications", hub.Serve).Methods(http.MethodGet)

	// ===============================
	// GLOBAL MIDDLEWARE
	// ===============================

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	return r, nil
}
