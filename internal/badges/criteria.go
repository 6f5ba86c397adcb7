// file: internal/badges/criteria.go
package badges

import (
	"fmt"

	"picnicquest/internal/models"
)

// Evaluation is the outcome of checking one badge's criteria against a
// stats snapshot.
type Evaluation struct {
	Satisfied bool
	Progress  int64
	Required  int64
}

// Evaluate checks whether the stats snapshot (plus the triggering event's
// context, for achievement criteria) satisfies the badge's unlock rule.
// Pure function: no side effects, no I/O.
func Evaluate(stats *models.UserStats, ev Event, badge models.Badge) (Evaluation, error) {
	required := badge.Criteria.Value

	var progress int64
	switch badge.Criteria.Type {
	case models.CriteriaCount:
		switch badge.Category {
		case models.CategoryBooking:
			progress = stats.TotalBookings
		case models.CategoryReview:
			progress = stats.TotalReviews
		default:
			// NewCatalog rejects these, but a store-loaded definition
			// could still carry one.
			return Evaluation{}, fmt.Errorf("%w: count criteria on category %q",
				ErrUnsupportedCriteria, badge.Category)
		}

	case models.CriteriaMilestone:
		if badge.Criteria.Target == nil {
			return Evaluation{}, fmt.Errorf("%w: milestone without target", ErrUnsupportedCriteria)
		}
		progress = stats.SpotVisits[*badge.Criteria.Target]

	case models.CriteriaStreak:
		progress = stats.StreakDays

	case models.CriteriaAchievement:
		// One-shot predicate supplied by the event context; boolean
		// progress.
		required = 1
		if ev.HasCondition(badge.Criteria.Code) {
			progress = 1
		}

	default:
		return Evaluation{}, fmt.Errorf("%w: %q", ErrUnsupportedCriteria, badge.Criteria.Type)
	}

	satisfied := progress >= required
	if satisfied {
		// Reported progress is capped so progress never exceeds the
		// requirement once a badge completes.
		progress = required
	}

	return Evaluation{Satisfied: satisfied, Progress: progress, Required: required}, nil
}
