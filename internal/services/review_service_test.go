// file: internal/services/review_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/models"
)

// fakeReviewRepo keeps reviews in a slice
type fakeReviewRepo struct {
	reviews []*models.Review
	nextID  int64
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.nextID++
	review.ID = r.nextID
	review.SubmittedAt = time.Now()
	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	for _, review := range r.reviews {
		if review.ID == id {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	var mine []models.Review
	for _, review := range r.reviews {
		if review.UserID == userID {
			mine = append(mine, *review)
		}
	}
	return &models.PaginatedResponse[models.Review]{Data: mine}, nil
}

func (r *fakeReviewRepo) ListRecent(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse[models.Review], error) {
	var all []models.Review
	for _, review := range r.reviews {
		all = append(all, *review)
	}
	return &models.PaginatedResponse[models.Review]{Data: all}, nil
}

func newTestReviewService(t *testing.T) (ReviewService, *fakeReviewRepo, *fakeProgressRepo) {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	require.NoError(t, err)

	progress := newFakeProgressRepo()
	engine := badges.NewEngine(catalog, progress, logger, nil)

	reviews := &fakeReviewRepo{}
	spots := &fakeSpotRepo{spots: []models.Spot{{ID: badges.MarinaBeachSpotID, Name: "Marina Beach", IsActive: true}}}

	service := NewReviewService(reviews, spots, engine, &fakeBus{}, logger)
	return service, reviews, progress
}

func TestSubmitReviewAwardsFirstReview(t *testing.T) {
	service, _, progress := newTestReviewService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	result, err := service.Submit(context.Background(), &SubmitReviewRequest{
		UserID:          1,
		LocationName:    "Uhuru Gardens",
		NearestLandmark: "Langata Road",
		Reason:          "Plenty of shade and open lawns for games.",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Review)

	names := make([]string, 0, len(result.EarnedBadges))
	for _, badge := range result.EarnedBadges {
		names = append(names, badge.Name)
	}
	assert.Contains(t, names, "First Review")
}

func TestSubmitReviewLinksKnownSpotByName(t *testing.T) {
	service, reviews, progress := newTestReviewService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	result, err := service.Submit(context.Background(), &SubmitReviewRequest{
		UserID:          1,
		LocationName:    "Marina Beach",
		NearestLandmark: "Lighthouse",
		Reason:          "The sunrise over the water is unbeatable.",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Review.SpotID)
	assert.Equal(t, int64(badges.MarinaBeachSpotID), *result.Review.SpotID)
	assert.Len(t, reviews.reviews, 1)
}

func TestSubmitReviewDoesNotCountSpotVisit(t *testing.T) {
	service, _, progress := newTestReviewService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	result, err := service.Submit(context.Background(), &SubmitReviewRequest{
		UserID:          1,
		LocationName:    "Marina Beach",
		NearestLandmark: "Lighthouse",
		Reason:          "Soft sand and a steady breeze all afternoon.",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Review.SpotID)

	// The review links to the spot, but only bookings count as visits,
	// so the milestone badge stays locked.
	names := make([]string, 0, len(result.EarnedBadges))
	for _, badge := range result.EarnedBadges {
		names = append(names, badge.Name)
	}
	assert.NotContains(t, names, "Beach Lover")

	stats, err := progress.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, stats.SpotVisits)
}

func TestSubmitReviewKeepsUnknownLocationUnlinked(t *testing.T) {
	service, _, progress := newTestReviewService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	result, err := service.Submit(context.Background(), &SubmitReviewRequest{
		UserID:          1,
		LocationName:    "Secret Waterfall",
		NearestLandmark: "Forest trailhead",
		Reason:          "Quiet, and the pools are safe for wading.",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Review.SpotID)
}

func TestSubmitReviewRequiresFields(t *testing.T) {
	service, _, progress := newTestReviewService(t)

	require.NoError(t, progress.InitUser(context.Background(), 1))

	_, err := service.Submit(context.Background(), &SubmitReviewRequest{
		UserID:       1,
		LocationName: "Uhuru Gardens",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
