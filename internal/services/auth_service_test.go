// file: internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/config"
	"picnicquest/internal/events"
	"picnicquest/internal/models"
)

// ===============================
// SHARED FAKES
// ===============================

// fakeBus records published events without delivering them
type fakeBus struct {
	published []events.Event
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) PublishAsync(ctx context.Context, event events.Event) error {
	return b.Publish(ctx, event)
}

func (b *fakeBus) Subscribe(eventType string, handler events.EventHandler) error { return nil }

func (b *fakeBus) SubscribePattern(pattern string, handler events.EventHandler) error { return nil }

func (b *fakeBus) Unsubscribe(eventType string, handler events.EventHandler) error { return nil }

func (b *fakeBus) Start(ctx context.Context) error { return nil }

func (b *fakeBus) Stop(ctx context.Context) error { return nil }

func (b *fakeBus) Health() error { return nil }

func (b *fakeBus) Stats() *events.EventBusStats { return &events.EventBusStats{} }

func (b *fakeBus) eventTypes() []string {
	types := make([]string, 0, len(b.published))
	for _, event := range b.published {
		types = append(types, event.GetEventType())
	}
	return types
}

// fakeUserRepo keeps users in a slice
type fakeUserRepo struct {
	users  []*models.User
	nextID int64
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	user.IsActive = true
	user.CreatedAt = time.Now()
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id && user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username && user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.ID == user.ID {
			existing.Username = user.Username
			existing.Email = user.Email
			existing.Name = user.Name
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) UpdateLastSeen(ctx context.Context, userID int64) error { return nil }

func (r *fakeUserRepo) Deactivate(ctx context.Context, userID int64) error {
	for _, user := range r.users {
		if user.ID == userID {
			user.IsActive = false
		}
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.User], error) {
	var active []models.User
	for _, user := range r.users {
		if user.IsActive {
			active = append(active, *user)
		}
	}
	return &models.PaginatedResponse[models.User]{Data: active}, nil
}

// fakeProgressRepo keeps badge progress in maps
type fakeProgressRepo struct {
	stats    map[int64]*models.UserStats
	badgeRow map[int64][]models.UserBadge
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		stats:    make(map[int64]*models.UserStats),
		badgeRow: make(map[int64][]models.UserBadge),
	}
}

func (r *fakeProgressRepo) InitUser(ctx context.Context, userID int64) error {
	if _, ok := r.stats[userID]; !ok {
		r.stats[userID] = &models.UserStats{UserID: userID}
	}
	return nil
}

func (r *fakeProgressRepo) Load(ctx context.Context, userID int64) (*models.UserStats, []models.UserBadge, error) {
	stats, ok := r.stats[userID]
	if !ok {
		return nil, nil, badges.ErrUnknownUser
	}
	return stats.Clone(), append([]models.UserBadge(nil), r.badgeRow[userID]...), nil
}

func (r *fakeProgressRepo) CommitAtomic(ctx context.Context, userID int64, stats *models.UserStats, diffs []badges.BadgeDiff) error {
	current, ok := r.stats[userID]
	if !ok {
		return badges.ErrUnknownUser
	}
	if current.Version != stats.Version {
		return badges.ErrConflict
	}
	committed := stats.Clone()
	committed.Version++
	r.stats[userID] = committed

	for _, diff := range diffs {
		updated := false
		for i := range r.badgeRow[userID] {
			if r.badgeRow[userID][i].BadgeID == diff.BadgeID {
				r.badgeRow[userID][i].Progress = diff.Progress
				if diff.Completed && !r.badgeRow[userID][i].Completed {
					r.badgeRow[userID][i].Completed = true
					r.badgeRow[userID][i].EarnedAt = diff.EarnedAt
				}
				updated = true
			}
		}
		if !updated {
			r.badgeRow[userID] = append(r.badgeRow[userID], models.UserBadge{
				UserID:    userID,
				BadgeID:   diff.BadgeID,
				Progress:  diff.Progress,
				Completed: diff.Completed,
				EarnedAt:  diff.EarnedAt,
			})
		}
	}
	return nil
}

func (r *fakeProgressRepo) GetBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	return append([]models.UserBadge(nil), r.badgeRow[userID]...), nil
}

func (r *fakeProgressRepo) GetStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	stats, ok := r.stats[userID]
	if !ok {
		return nil, nil
	}
	return stats.Clone(), nil
}

func (r *fakeProgressRepo) CountCompleted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, row := range r.badgeRow[userID] {
		if row.Completed {
			count++
		}
	}
	return count, nil
}

// ===============================
// TESTS
// ===============================

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:         "test-secret-key-for-auth-service",
		JWTExpiry:         time.Hour,
		BCryptCost:        10,
		MinPasswordLength: 8,
	}
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeProgressRepo, *fakeBus) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	users := &fakeUserRepo{}
	progress := newFakeProgressRepo()
	bus := &fakeBus{}
	service := NewAuthService(users, progress, bus, testAuthConfig(), logger)
	return service, users, progress, bus
}

func TestRegisterCreatesUserAndProgress(t *testing.T) {
	service, users, progress, bus := newTestAuthService(t)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Name:     "Amani W",
		Password: "picnic-time-123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "amani", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leak through the API")

	stored, err := users.GetByUsername(context.Background(), "amani")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "picnic-time-123", stored.PasswordHash)

	_, ok := progress.stats[stored.ID]
	assert.True(t, ok, "registration must create the stats row")

	assert.Contains(t, bus.eventTypes(), events.TypeUserRegistered)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	service, _, _, _ := newTestAuthService(t)

	first := &RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Name:     "Amani W",
		Password: "picnic-time-123",
	}
	_, err := service.Register(context.Background(), first)
	require.NoError(t, err)

	second := &RegisterRequest{
		Username: "amani",
		Email:    "other@example.com",
		Name:     "Other",
		Password: "picnic-time-456",
	}
	_, err = service.Register(context.Background(), second)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	service, _, _, _ := newTestAuthService(t)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Name:     "Amani W",
		Password: "picnic-time-123",
	})
	require.NoError(t, err)

	byUsername, err := service.Login(context.Background(), &LoginRequest{
		Identifier: "amani",
		Password:   "picnic-time-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byUsername.Token)

	byEmail, err := service.Login(context.Background(), &LoginRequest{
		Identifier: "amani@example.com",
		Password:   "picnic-time-123",
	})
	require.NoError(t, err)
	assert.Equal(t, byUsername.User.ID, byEmail.User.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _, _, _ := newTestAuthService(t)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Name:     "Amani W",
		Password: "picnic-time-123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &LoginRequest{
		Identifier: "amani",
		Password:   "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}

func TestValidateTokenRoundTrip(t *testing.T) {
	service, _, _, _ := newTestAuthService(t)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Username: "amani",
		Email:    "amani@example.com",
		Name:     "Amani W",
		Password: "picnic-time-123",
	})
	require.NoError(t, err)

	userID, err := service.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, _, _, _ := newTestAuthService(t)

	_, err := service.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
