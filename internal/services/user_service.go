// file: internal/services/user_service.go
package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"picnicquest/internal/models"
	"picnicquest/internal/repositories"
)

// userService implements UserService
type userService struct {
	users    repositories.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetProfile returns a user's profile with badge count
func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to get user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", userID)
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies profile changes. Earned badges are keyed by
// user ID and survive a rename untouched.
func (s *userService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid profile data", err)
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, NewInternalError("failed to get user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", req.UserID)
	}

	if req.Username != user.Username {
		if existing, err := s.users.GetByUsername(ctx, req.Username); err != nil {
			return nil, NewInternalError("failed to check username")
		} else if existing != nil {
			return nil, EntityAlreadyExistsError("user", "username", req.Username)
		}
	}
	if req.Email != user.Email {
		if existing, err := s.users.GetByEmail(ctx, req.Email); err != nil {
			return nil, NewInternalError("failed to check email")
		} else if existing != nil {
			return nil, EntityAlreadyExistsError("user", "email", req.Email)
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Name = req.Name

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, NewInternalError("failed to update profile")
	}

	user.PasswordHash = ""
	return user, nil
}

// Deactivate soft-deletes a user account
func (s *userService) Deactivate(ctx context.Context, userID int64) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return NewInternalError("failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.Int64("user_id", userID))
	return nil
}

// List returns a page of users
func (s *userService) List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.User], error) {
	page, err := s.users.List(ctx, params)
	if err != nil {
		return nil, NewInternalError("failed to list users")
	}

	for i := range page.Data {
		page.Data[i].PasswordHash = ""
	}
	return page, nil
}
