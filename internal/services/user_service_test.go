// file: internal/services/user_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picnicquest/internal/models"
)

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	users := &fakeUserRepo{}
	return NewUserService(users, logger), users
}

func seedUser(t *testing.T, users *fakeUserRepo, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakehash",
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestGetProfileHidesPasswordHash(t *testing.T) {
	service, users := newTestUserService(t)
	seeded := seedUser(t, users, "amani", "amani@example.com")

	profile, err := service.GetProfile(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "amani", profile.Username)
	assert.Empty(t, profile.PasswordHash)
}

func TestGetProfileUnknownUser(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.GetProfile(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdateProfileRename(t *testing.T) {
	service, users := newTestUserService(t)
	seeded := seedUser(t, users, "amani", "amani@example.com")

	updated, err := service.UpdateProfile(context.Background(), &UpdateProfileRequest{
		UserID:   seeded.ID,
		Username: "amani2",
		Email:    "amani@example.com",
		Name:     "Amani Wanjiru",
	})
	require.NoError(t, err)
	assert.Equal(t, "amani2", updated.Username)

	stored, err := users.GetByUsername(context.Background(), "amani2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, seeded.ID, stored.ID, "rename keeps the same user ID")
}

func TestUpdateProfileRejectsTakenUsername(t *testing.T) {
	service, users := newTestUserService(t)
	seedUser(t, users, "amani", "amani@example.com")
	other := seedUser(t, users, "baraka", "baraka@example.com")

	_, err := service.UpdateProfile(context.Background(), &UpdateProfileRequest{
		UserID:   other.ID,
		Username: "amani",
		Email:    "baraka@example.com",
		Name:     "Baraka O",
	})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestDeactivateHidesUser(t *testing.T) {
	service, users := newTestUserService(t)
	seeded := seedUser(t, users, "amani", "amani@example.com")

	require.NoError(t, service.Deactivate(context.Background(), seeded.ID))

	_, err := service.GetProfile(context.Background(), seeded.ID)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
