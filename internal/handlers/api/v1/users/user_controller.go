// file: internal/handlers/api/v1/users/user_controller.go
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/middleware"
	"picnicquest/internal/response"
	"picnicquest/internal/services"
)

const requestTimeout = 30 * time.Second

// UserController handles profile API endpoints
type UserController struct {
	userService     services.UserService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewUserController creates a new user API controller
func NewUserController(userService services.UserService, responseBuilder *response.Builder, logger *zap.Logger) *UserController {
	return &UserController{
		userService:     userService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Me returns the caller's profile
// GET /api/v1/users/me
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := c.userService.GetProfile(ctx, userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, user)
}

// UpdateMe changes the caller's profile. Badge awards are keyed by
// user ID, so renames never touch earned badges.
// PUT /api/v1/users/me
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", nil))
		return
	}
	req.UserID = userID

	user, err := c.userService.UpdateProfile(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), c.logger).Info("Profile updated",
		zap.Int64("user_id", userID),
	)

	c.responseBuilder.WriteSuccess(w, r, user)
}

// DeactivateMe soft-deletes the caller's account
// DELETE /api/v1/users/me
func (c *UserController) DeactivateMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	if err := c.userService.Deactivate(ctx, userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteNoContent(w, r)
}

// List returns active users
// GET /api/v1/users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	params := response.ParsePagination(r)

	page, err := c.userService.List(ctx, params)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, page)
}
