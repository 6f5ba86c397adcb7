// file: internal/services/auth_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"picnicquest/internal/config"
	"picnicquest/internal/events"
	"picnicquest/internal/models"
	"picnicquest/internal/repositories"
)

// authService implements AuthService
type authService struct {
	users    repositories.UserRepository
	progress repositories.ProgressRepository
	bus      events.EventBus
	config   *config.AuthConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	progress repositories.ProgressRepository,
	bus events.EventBus,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:    users,
		progress: progress,
		bus:      bus,
		config:   cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a new account with an empty badge progress record
// and returns a signed token.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid registration data", err)
	}

	if existing, err := s.users.GetByUsername(ctx, req.Username); err != nil {
		return nil, NewInternalError("failed to check username")
	} else if existing != nil {
		return nil, EntityAlreadyExistsError("user", "username", req.Username)
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err != nil {
		return nil, NewInternalError("failed to check email")
	} else if existing != nil {
		return nil, EntityAlreadyExistsError("user", "email", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, NewInternalError("failed to create user")
	}

	// The stats row must exist before the first booking or review event
	// can be handled for this user.
	if err := s.progress.InitUser(ctx, user.ID); err != nil {
		s.logger.Error("Failed to init badge progress for new user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to initialize user progress")
	}

	if err := s.bus.PublishAsync(ctx, events.NewUserRegisteredEvent(user.ID, user.Username, user.Email)); err != nil {
		s.logger.Warn("Failed to publish user registered event", zap.Error(err))
	}

	return s.buildAuthResponse(user)
}

// Login verifies credentials and returns a signed token
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid login data", err)
	}

	var user *models.User
	var err error
	if strings.Contains(req.Identifier, "@") {
		user, err = s.users.GetByEmail(ctx, req.Identifier)
	} else {
		user, err = s.users.GetByUsername(ctx, req.Identifier)
	}
	if err != nil {
		return nil, NewInternalError("failed to look up user")
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	if err := s.users.UpdateLastSeen(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to update last seen", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	if err := s.bus.PublishAsync(ctx, events.NewUserLoggedInEvent(user.ID, "", "")); err != nil {
		s.logger.Warn("Failed to publish login event", zap.Error(err))
	}

	return s.buildAuthResponse(user)
}

// ValidateToken parses and verifies a token, returning the user ID
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, NewUnauthorizedError("invalid token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return 0, NewUnauthorizedError("invalid token subject")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, NewUnauthorizedError("invalid token subject")
	}

	return userID, nil
}

func (s *authService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(s.config.JWTExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"usr": user.Username,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, NewInternalError("failed to sign token")
	}

	// Never leak the hash through the API surface.
	user.PasswordHash = ""

	return &AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
