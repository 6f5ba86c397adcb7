// file: internal/badges/stats_test.go
package badges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picnicquest/internal/models"
)

func freshStats(userID int64) *models.UserStats {
	return &models.UserStats{
		UserID:     userID,
		SpotVisits: map[int64]int64{},
	}
}

func bookingOn(userID int64, day time.Time) Event {
	return Event{Kind: EventBookingCreated, UserID: userID, OccurredAt: day}
}

func reviewOn(userID int64, day time.Time) Event {
	return Event{Kind: EventReviewSubmitted, UserID: userID, OccurredAt: day}
}

func TestApplyEventCounters(t *testing.T) {
	day := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	stats := freshStats(1)

	next, err := ApplyEvent(stats, bookingOn(1, day))
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.TotalBookings)
	assert.Equal(t, int64(0), next.TotalReviews)

	next, err = ApplyEvent(next, reviewOn(1, day))
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.TotalBookings)
	assert.Equal(t, int64(1), next.TotalReviews)

	// Monotonic counters regardless of interleaving.
	for i := 0; i < 4; i++ {
		next, err = ApplyEvent(next, bookingOn(1, day))
		require.NoError(t, err)
		next, err = ApplyEvent(next, reviewOn(1, day))
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), next.TotalBookings)
	assert.Equal(t, int64(5), next.TotalReviews)
}

func TestApplyEventDoesNotMutateInput(t *testing.T) {
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	spot := int64(3)
	stats := freshStats(1)

	ev := bookingOn(1, day)
	ev.SpotID = &spot
	_, err := ApplyEvent(stats, ev)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalBookings)
	assert.Nil(t, stats.LastActivityDate)
	assert.Empty(t, stats.SpotVisits)
}

func TestApplyEventStreakAlgebra(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		days       []time.Time
		wantStreak int64
	}{
		{
			name:       "first activity starts streak at 1",
			days:       []time.Time{day1},
			wantStreak: 1,
		},
		{
			name:       "three consecutive days",
			days:       []time.Time{day1, day1.AddDate(0, 0, 1), day1.AddDate(0, 0, 2)},
			wantStreak: 3,
		},
		{
			name:       "same-day repeat does not increment",
			days:       []time.Time{day1, day1.Add(5 * time.Hour)},
			wantStreak: 1,
		},
		{
			name:       "gap of three days resets to 1",
			days:       []time.Time{day1, day1.AddDate(0, 0, 3)},
			wantStreak: 1,
		},
		{
			name:       "streak survives same-day repeats in between",
			days:       []time.Time{day1, day1.AddDate(0, 0, 1), day1.AddDate(0, 0, 1).Add(time.Hour), day1.AddDate(0, 0, 2)},
			wantStreak: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := freshStats(1)
			for _, day := range tt.days {
				next, err := ApplyEvent(stats, bookingOn(1, day))
				require.NoError(t, err)
				stats = next
			}
			assert.Equal(t, tt.wantStreak, stats.StreakDays)
		})
	}
}

func TestApplyEventRejectsOutOfOrder(t *testing.T) {
	day := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	stats := freshStats(1)

	next, err := ApplyEvent(stats, bookingOn(1, day))
	require.NoError(t, err)

	_, err = ApplyEvent(next, bookingOn(1, day.AddDate(0, 0, -2)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfOrderEvent)

	// Rejected events leave the snapshot untouched.
	assert.Equal(t, int64(1), next.TotalBookings)
	assert.Equal(t, DateOf(day), *next.LastActivityDate)
}

func TestApplyEventRecordsSpotVisits(t *testing.T) {
	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	spot := MarinaBeachSpotID
	stats := freshStats(1)

	ev := bookingOn(1, day)
	ev.SpotID = &spot

	next, err := ApplyEvent(stats, ev)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.SpotVisits[spot])
	assert.Contains(t, next.FavoriteSpots(), spot)

	next, err = ApplyEvent(next, ev)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.SpotVisits[spot])

	// Reviews update activity but do not record visits, even when the
	// review is linked to a known spot.
	review := reviewOn(1, day)
	review.SpotID = &spot
	next, err = ApplyEvent(next, review)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.SpotVisits[spot])
}

func TestApplyEventValidation(t *testing.T) {
	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	_, err := ApplyEvent(nil, bookingOn(1, day))
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = ApplyEvent(freshStats(1), Event{Kind: "spot.closed", UserID: 1, OccurredAt: day})
	assert.ErrorIs(t, err, ErrUnknownEventKind)

	_, err = ApplyEvent(freshStats(1), Event{Kind: EventBookingCreated, OccurredAt: day})
	assert.Error(t, err)

	_, err = ApplyEvent(freshStats(1), Event{Kind: EventBookingCreated, UserID: 1})
	assert.Error(t, err)
}
