// file: internal/handlers/api/v1/auth/auth_controller.go
package auth

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

// AuthController handles registration and login endpoints
type AuthController struct {
	authService     services.AuthService
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewAuthController creates a new auth API controller
func NewAuthController(authService services.AuthService, responseBuilder *response.Builder, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService:     authService,
		responseBuilder: responseBuilder,
		logger:          logger,
	}
}

// Register creates a new account
// POST /api/v1/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", nil))
		return
	}

	resp, err := c.authService.Register(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context(), c.logger).Info("User registered",
		zap.Int64("user_id", resp.User.ID),
		zap.String("username", resp.User.Username),
	)

	c.responseBuilder.WriteCreated(w, r, resp)
}

// Login exchanges credentials for a token
// POST /api/v1/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", nil))
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, resp)
}
