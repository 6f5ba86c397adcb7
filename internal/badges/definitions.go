// file: internal/badges/definitions.go
package badges

import "picnicquest/internal/models"

// MarinaBeachSpotID is the seeded spot the "Beach Lover" milestone counts
// visits toward. The migrations seed the spot with this id.
const MarinaBeachSpotID int64 = 1

// ConditionEarlyBird is asserted on booking events whose picnic starts
// before 08:00 local time.
const ConditionEarlyBird = "early_bird"

// DefaultDefinitions returns the built-in badge catalog.
func DefaultDefinitions() []models.Badge {
	target := MarinaBeachSpotID

	return []models.Badge{
		{
			ID:          1,
			Name:        "First Timer",
			Description: "Book your first picnic",
			Icon:        "/badges/first-timer.svg",
			Category:    models.CategoryBooking,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 1},
			Level:       1,
		},
		{
			ID:          2,
			Name:        "Regular Explorer",
			Description: "Book 5 picnics",
			Icon:        "/badges/regular-explorer.svg",
			Category:    models.CategoryBooking,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 5},
			Level:       2,
		},
		{
			ID:          3,
			Name:        "Picnic Expert",
			Description: "Book 10 picnics",
			Icon:        "/badges/picnic-expert.svg",
			Category:    models.CategoryBooking,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 10},
			Level:       3,
		},
		{
			ID:          4,
			Name:        "First Review",
			Description: "Write your first review",
			Icon:        "/badges/first-review.svg",
			Category:    models.CategoryReview,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 1},
			Level:       1,
		},
		{
			ID:          5,
			Name:        "Review Pro",
			Description: "Write 5 reviews",
			Icon:        "/badges/review-pro.svg",
			Category:    models.CategoryReview,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 5},
			Level:       2,
		},
		{
			ID:          6,
			Name:        "Critic",
			Description: "Write 10 reviews",
			Icon:        "/badges/critic.svg",
			Category:    models.CategoryReview,
			Criteria:    models.Criteria{Type: models.CriteriaCount, Value: 10},
			Level:       3,
		},
		{
			ID:          7,
			Name:        "Beach Lover",
			Description: "Visit Marina Beach",
			Icon:        "/badges/beach-lover.svg",
			Category:    models.CategoryExploration,
			Criteria:    models.Criteria{Type: models.CriteriaMilestone, Value: 1, Target: &target},
			Level:       1,
		},
		{
			ID:          8,
			Name:        "Consistent Explorer",
			Description: "Visit for 3 consecutive days",
			Icon:        "/badges/consistent-explorer.svg",
			Category:    models.CategorySocial,
			Criteria:    models.Criteria{Type: models.CriteriaStreak, Value: 3},
			Level:       2,
		},
		{
			ID:          9,
			Name:        "Early Bird",
			Description: "Book a morning picnic (before 8 AM)",
			Icon:        "/badges/early-bird.svg",
			Category:    models.CategorySpecial,
			Criteria:    models.Criteria{Type: models.CriteriaAchievement, Value: 1, Code: ConditionEarlyBird},
			Level:       1,
		},
	}
}
