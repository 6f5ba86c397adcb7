// file: internal/models/badge.go
package models

import "time"

// BadgeCategory groups badges for display and determines which counter
// a count criteria reads.
type BadgeCategory string

const (
	CategoryBooking     BadgeCategory = "booking"
	CategoryReview      BadgeCategory = "review"
	CategoryExploration BadgeCategory = "exploration"
	CategorySocial      BadgeCategory = "social"
	CategorySpecial     BadgeCategory = "special"
)

// IsValid reports whether the category is one of the known values.
func (c BadgeCategory) IsValid() bool {
	switch c {
	case CategoryBooking, CategoryReview, CategoryExploration, CategorySocial, CategorySpecial:
		return true
	default:
		return false
	}
}

// CriteriaType identifies how a badge's unlock rule is evaluated.
type CriteriaType string

const (
	CriteriaCount       CriteriaType = "count"
	CriteriaMilestone   CriteriaType = "milestone"
	CriteriaStreak      CriteriaType = "streak"
	CriteriaAchievement CriteriaType = "achievement"
)

// Criteria is the unlock rule attached to a badge definition.
type Criteria struct {
	Type  CriteriaType `json:"type" db:"criteria_type"`
	Value int64        `json:"value" db:"criteria_value"`
	// Target is the spot a milestone criteria counts visits toward.
	Target *int64 `json:"target,omitempty" db:"criteria_target"`
	// Code names the one-shot condition an achievement criteria listens
	// for (e.g. "early_bird"); supplied by the triggering event.
	Code string `json:"code,omitempty" db:"criteria_code"`
}

// Badge is an immutable achievement definition. The numeric ID is the
// identity key; Name is unique but display-only, so renaming a badge
// preserves already-awarded records.
type Badge struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Icon        string        `json:"icon" db:"icon"`
	Category    BadgeCategory `json:"category" db:"category"`
	Criteria    Criteria      `json:"criteria"`
	Level       int           `json:"level" db:"level"`
}

// UserBadge tracks one user's progress toward one badge. Rows are created
// on first recorded progress; Completed flips to true exactly once and is
// never reverted.
type UserBadge struct {
	UserID    int64      `json:"user_id" db:"user_id"`
	BadgeID   int64      `json:"badge_id" db:"badge_id"`
	Progress  int64      `json:"progress" db:"progress"`
	Completed bool       `json:"completed" db:"completed"`
	EarnedAt  *time.Time `json:"earned_at,omitempty" db:"earned_at"`

	// Joined definition fields for display (not in user_badges)
	Badge *Badge `json:"badge,omitempty" db:"-"`
}

// UserStats is the per-user aggregate the achievement engine evaluates
// badges against. Owned by the user aggregate; mutated only through the
// engine's commit.
type UserStats struct {
	UserID        int64 `json:"user_id" db:"user_id"`
	TotalBookings int64 `json:"total_bookings" db:"total_bookings"`
	TotalReviews  int64 `json:"total_reviews" db:"total_reviews"`
	StreakDays    int64 `json:"streak_days" db:"streak_days"`
	// LastActivityDate has date granularity; the time of day is always
	// midnight UTC. Nil until the first event is applied.
	LastActivityDate *time.Time `json:"last_activity_date,omitempty" db:"last_activity_date"`
	// SpotVisits counts activity per spot; its key set is the user's
	// favorite-spots set and its values drive milestone criteria.
	SpotVisits map[int64]int64 `json:"spot_visits,omitempty" db:"spot_visits"`

	// Version implements optimistic concurrency on commit.
	Version int64 `json:"-" db:"version"`
}

// FavoriteSpots returns the ids of spots the user has visited.
func (s *UserStats) FavoriteSpots() []int64 {
	spots := make([]int64, 0, len(s.SpotVisits))
	for id := range s.SpotVisits {
		spots = append(spots, id)
	}
	return spots
}

// Clone returns a deep copy so evaluation can work on a snapshot without
// mutating the loaded state.
func (s *UserStats) Clone() *UserStats {
	if s == nil {
		return nil
	}
	clone := *s
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		clone.LastActivityDate = &d
	}
	clone.SpotVisits = make(map[int64]int64, len(s.SpotVisits))
	for id, n := range s.SpotVisits {
		clone.SpotVisits[id] = n
	}
	return &clone
}
