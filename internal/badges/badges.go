// Package badges implements the achievement engine: an immutable badge
// catalog, a pure criteria evaluator, a pure stats aggregator and the
// award engine that ties them together with one atomic write per event.
package badges

import (
	"context"
	"errors"
	"time"

	"picnicquest/internal/models"
)

// ===============================
// DOMAIN EVENTS
// ===============================

// EventKind identifies the domain fact an event carries.
type EventKind string

const (
	EventBookingCreated  EventKind = "booking.created"
	EventReviewSubmitted EventKind = "review.submitted"
)

// IsValid reports whether the kind is one the engine understands.
func (k EventKind) IsValid() bool {
	return k == EventBookingCreated || k == EventReviewSubmitted
}

// Event is a validated domain fact consumed by the award engine. It is
// emitted by the booking/review services only after their own record is
// durably stored.
type Event struct {
	Kind   EventKind
	UserID int64

	// RefID is the id of the persisted booking or review row the event
	// refers to; carried for auditing, not deduplicated by the engine.
	RefID int64

	// SpotID is set when a booking references a known spot.
	SpotID *int64

	// OccurredAt is when the activity happened; the date part drives the
	// streak rule.
	OccurredAt time.Time

	// Conditions are one-shot achievement codes this event asserts
	// (e.g. "early_bird" for a booking before 08:00).
	Conditions []string
}

// HasCondition reports whether the event asserts the given achievement code.
func (e Event) HasCondition(code string) bool {
	for _, c := range e.Conditions {
		if c == code {
			return true
		}
	}
	return false
}

// Validate checks the event is well-formed before the engine touches state.
func (e Event) Validate() error {
	if !e.Kind.IsValid() {
		return ErrUnknownEventKind
	}
	if e.UserID <= 0 {
		return errors.New("badges: event user id must be positive")
	}
	if e.OccurredAt.IsZero() {
		return errors.New("badges: event occurrence time is required")
	}
	return nil
}

// ===============================
// ERROR TAXONOMY
// ===============================

var (
	// ErrUnsupportedCriteria marks a badge definition whose criteria type
	// the evaluator does not understand. The engine logs and skips the
	// badge; other badges in the same call are still evaluated.
	ErrUnsupportedCriteria = errors.New("badges: unsupported criteria type")

	// ErrOutOfOrderEvent rejects an event dated before the user's last
	// recorded activity. No mutation is applied.
	ErrOutOfOrderEvent = errors.New("badges: event predates last recorded activity")

	// ErrUnknownUser means no stats row exists for the event's user; stats
	// rows are created at registration, so this is fatal to the call.
	ErrUnknownUser = errors.New("badges: unknown user")

	// ErrConflict signals a concurrent write detected at commit. The engine
	// retries by replaying Handle from a freshly loaded snapshot.
	ErrConflict = errors.New("badges: concurrent modification detected")

	// ErrUnknownEventKind rejects events of a kind the engine cannot apply.
	ErrUnknownEventKind = errors.New("badges: unknown event kind")
)

// ===============================
// STORAGE CONTRACT
// ===============================

// BadgeDiff is one pending change to a user's badge progress, applied
// together with the stats update in a single atomic commit.
type BadgeDiff struct {
	BadgeID   int64
	Progress  int64
	Completed bool
	EarnedAt  *time.Time
}

// ProgressStore is the engine's persistence contract. CommitAtomic must
// apply the stats update and all badge diffs as one unit scoped to the
// user, and return ErrConflict when the loaded snapshot is stale.
type ProgressStore interface {
	Load(ctx context.Context, userID int64) (*models.UserStats, []models.UserBadge, error)
	CommitAtomic(ctx context.Context, userID int64, stats *models.UserStats, diffs []BadgeDiff) error
}
