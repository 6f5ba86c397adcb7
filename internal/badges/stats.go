// file: internal/badges/stats.go
package badges

import (
	"fmt"
	"time"

	"picnicquest/internal/models"
)

// ApplyEvent folds a domain event into a user's stats snapshot and returns
// the updated copy. It is a pure transformation: the input snapshot is
// never mutated and no I/O happens here.
//
// Streak rule, in whole days between the event date and the last recorded
// activity: gap 0 leaves the streak unchanged, gap 1 extends it, anything
// larger (or no previous activity) resets it to 1. A negative gap rejects
// the event with ErrOutOfOrderEvent.
//
// Spot visits are recorded for booking events only; a review naming a
// known spot does not count as a visit.
func ApplyEvent(stats *models.UserStats, ev Event) (*models.UserStats, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrUnknownUser
	}

	eventDate := DateOf(ev.OccurredAt)

	next := stats.Clone()

	if last := stats.LastActivityDate; last == nil {
		next.StreakDays = 1
	} else {
		gap := wholeDays(*last, eventDate)
		switch {
		case gap < 0:
			return nil, fmt.Errorf("%w: event date %s before last activity %s",
				ErrOutOfOrderEvent, eventDate.Format("2006-01-02"), last.Format("2006-01-02"))
		case gap == 0:
			// Same-day repeat activity does not grow the streak.
		case gap == 1:
			next.StreakDays++
		default:
			next.StreakDays = 1
		}
	}
	next.LastActivityDate = &eventDate

	switch ev.Kind {
	case EventBookingCreated:
		next.TotalBookings++
		if ev.SpotID != nil {
			next.SpotVisits[*ev.SpotID]++
		}
	case EventReviewSubmitted:
		next.TotalReviews++
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, ev.Kind)
	}

	return next, nil
}

// DateOf truncates a timestamp to date granularity in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wholeDays returns to-from in whole days; both arguments must already be
// date-truncated.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
