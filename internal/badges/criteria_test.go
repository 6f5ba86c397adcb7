// file: internal/badges/criteria_test.go
package badges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picnicquest/internal/models"
)

func TestEvaluateCountCriteria(t *testing.T) {
	bookingBadge := models.Badge{
		ID: 2, Name: "Regular Explorer", Category: models.CategoryBooking,
		Criteria: models.Criteria{Type: models.CriteriaCount, Value: 5}, Level: 2,
	}
	reviewBadge := models.Badge{
		ID: 4, Name: "First Review", Category: models.CategoryReview,
		Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1,
	}

	stats := &models.UserStats{TotalBookings: 4, TotalReviews: 1}
	ev := Event{Kind: EventBookingCreated, UserID: 1, OccurredAt: time.Now()}

	eval, err := Evaluate(stats, ev, bookingBadge)
	require.NoError(t, err)
	assert.False(t, eval.Satisfied)
	assert.Equal(t, int64(4), eval.Progress)
	assert.Equal(t, int64(5), eval.Required)

	eval, err = Evaluate(stats, ev, reviewBadge)
	require.NoError(t, err)
	assert.True(t, eval.Satisfied)
	assert.Equal(t, int64(1), eval.Progress)
}

func TestEvaluateCapsProgressAtRequired(t *testing.T) {
	badge := models.Badge{
		ID: 1, Name: "First Timer", Category: models.CategoryBooking,
		Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1,
	}
	stats := &models.UserStats{TotalBookings: 12}
	ev := Event{Kind: EventBookingCreated, UserID: 1, OccurredAt: time.Now()}

	eval, err := Evaluate(stats, ev, badge)
	require.NoError(t, err)
	assert.True(t, eval.Satisfied)
	assert.Equal(t, eval.Required, eval.Progress)
}

func TestEvaluateMilestoneCriteria(t *testing.T) {
	target := MarinaBeachSpotID
	badge := models.Badge{
		ID: 7, Name: "Beach Lover", Category: models.CategoryExploration,
		Criteria: models.Criteria{Type: models.CriteriaMilestone, Value: 1, Target: &target},
		Level:    1,
	}
	ev := Event{Kind: EventBookingCreated, UserID: 1, OccurredAt: time.Now()}

	eval, err := Evaluate(&models.UserStats{SpotVisits: map[int64]int64{}}, ev, badge)
	require.NoError(t, err)
	assert.False(t, eval.Satisfied)
	assert.Equal(t, int64(0), eval.Progress)

	eval, err = Evaluate(&models.UserStats{SpotVisits: map[int64]int64{target: 1}}, ev, badge)
	require.NoError(t, err)
	assert.True(t, eval.Satisfied)
}

func TestEvaluateStreakCriteria(t *testing.T) {
	badge := models.Badge{
		ID: 8, Name: "Consistent Explorer", Category: models.CategorySocial,
		Criteria: models.Criteria{Type: models.CriteriaStreak, Value: 3}, Level: 2,
	}
	ev := Event{Kind: EventReviewSubmitted, UserID: 1, OccurredAt: time.Now()}

	eval, err := Evaluate(&models.UserStats{StreakDays: 2}, ev, badge)
	require.NoError(t, err)
	assert.False(t, eval.Satisfied)
	assert.Equal(t, int64(2), eval.Progress)

	eval, err = Evaluate(&models.UserStats{StreakDays: 3}, ev, badge)
	require.NoError(t, err)
	assert.True(t, eval.Satisfied)
}

func TestEvaluateAchievementCriteria(t *testing.T) {
	badge := models.Badge{
		ID: 9, Name: "Early Bird", Category: models.CategorySpecial,
		Criteria: models.Criteria{Type: models.CriteriaAchievement, Value: 1, Code: ConditionEarlyBird},
		Level:    1,
	}
	stats := &models.UserStats{}

	ev := Event{Kind: EventBookingCreated, UserID: 1, OccurredAt: time.Now()}
	eval, err := Evaluate(stats, ev, badge)
	require.NoError(t, err)
	assert.False(t, eval.Satisfied)
	assert.Equal(t, int64(0), eval.Progress)

	ev.Conditions = []string{ConditionEarlyBird}
	eval, err = Evaluate(stats, ev, badge)
	require.NoError(t, err)
	assert.True(t, eval.Satisfied)
	assert.Equal(t, int64(1), eval.Progress)
	assert.Equal(t, int64(1), eval.Required)
}

func TestEvaluateUnsupportedCriteria(t *testing.T) {
	ev := Event{Kind: EventBookingCreated, UserID: 1, OccurredAt: time.Now()}

	tests := []struct {
		name  string
		badge models.Badge
	}{
		{
			name: "unknown criteria type",
			badge: models.Badge{ID: 1, Name: "X", Category: models.CategorySpecial,
				Criteria: models.Criteria{Type: "quest", Value: 1}},
		},
		{
			name: "count on uncounted category",
			badge: models.Badge{ID: 2, Name: "Y", Category: models.CategorySpecial,
				Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}},
		},
		{
			name: "milestone without target",
			badge: models.Badge{ID: 3, Name: "Z", Category: models.CategoryExploration,
				Criteria: models.Criteria{Type: models.CriteriaMilestone, Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(&models.UserStats{}, ev, tt.badge)
			assert.ErrorIs(t, err, ErrUnsupportedCriteria)
		})
	}
}
