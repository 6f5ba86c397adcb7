// file: internal/badges/catalog_test.go
package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picnicquest/internal/models"
)

func TestNewCatalogWithDefaultDefinitions(t *testing.T) {
	catalog, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)
	assert.Equal(t, 9, catalog.Len())

	// Stable order: level ascending, name breaking ties.
	all := catalog.All()
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Level == cur.Level {
			assert.Less(t, prev.Name, cur.Name)
		} else {
			assert.Less(t, prev.Level, cur.Level)
		}
	}
}

func TestNewCatalogRejectsDuplicateName(t *testing.T) {
	defs := []models.Badge{
		{ID: 1, Name: "First Timer", Category: models.CategoryBooking,
			Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1},
		{ID: 2, Name: "First Timer", Category: models.CategoryBooking,
			Criteria: models.Criteria{Type: models.CriteriaCount, Value: 5}, Level: 2},
	}

	_, err := NewCatalog(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate badge name")
}

func TestNewCatalogRejectsDuplicateID(t *testing.T) {
	defs := []models.Badge{
		{ID: 7, Name: "A", Category: models.CategoryBooking,
			Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1},
		{ID: 7, Name: "B", Category: models.CategoryReview,
			Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1},
	}

	_, err := NewCatalog(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate badge id")
}

func TestNewCatalogRejectsUnknownCriteriaType(t *testing.T) {
	defs := []models.Badge{
		{ID: 1, Name: "Weird", Category: models.CategorySpecial,
			Criteria: models.Criteria{Type: "quest", Value: 1}, Level: 1},
	}

	_, err := NewCatalog(defs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedCriteria)
}

func TestNewCatalogRejectsMalformedDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  models.Badge
	}{
		{
			name: "count criteria outside counted categories",
			def: models.Badge{ID: 1, Name: "X", Category: models.CategorySpecial,
				Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1},
		},
		{
			name: "milestone without target",
			def: models.Badge{ID: 1, Name: "X", Category: models.CategoryExploration,
				Criteria: models.Criteria{Type: models.CriteriaMilestone, Value: 1}, Level: 1},
		},
		{
			name: "achievement without code",
			def: models.Badge{ID: 1, Name: "X", Category: models.CategorySpecial,
				Criteria: models.Criteria{Type: models.CriteriaAchievement, Value: 1}, Level: 1},
		},
		{
			name: "zero criteria value",
			def: models.Badge{ID: 1, Name: "X", Category: models.CategoryBooking,
				Criteria: models.Criteria{Type: models.CriteriaCount, Value: 0}, Level: 1},
		},
		{
			name: "unknown category",
			def: models.Badge{ID: 1, Name: "X", Category: "cooking",
				Criteria: models.Criteria{Type: models.CriteriaCount, Value: 1}, Level: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]models.Badge{tt.def})
			assert.Error(t, err)
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)

	bookingBadges := catalog.ByCategory(models.CategoryBooking)
	assert.Len(t, bookingBadges, 3)

	badge, ok := catalog.ByID(7)
	require.True(t, ok)
	assert.Equal(t, "Beach Lover", badge.Name)

	badge, ok = catalog.ByName("Early Bird")
	require.True(t, ok)
	assert.Equal(t, models.CriteriaAchievement, badge.Criteria.Type)

	_, ok = catalog.ByID(999)
	assert.False(t, ok)
}
