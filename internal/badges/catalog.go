// file: internal/badges/catalog.go
package badges

import (
	"fmt"
	"sort"

	"picnicquest/internal/models"
)

// Catalog is the immutable, process-wide registry of badge definitions.
// It is built once at startup and never mutated afterwards, so reads are
// safe from any goroutine without locking.
type Catalog struct {
	ordered []models.Badge
	byID    map[int64]models.Badge
	byName  map[string]models.Badge
}

// NewCatalog validates the definitions and builds a catalog. It fails on
// duplicate ids or names, unknown categories, and malformed criteria so a
// bad definition stops the process at startup instead of surfacing as a
// skipped badge at award time.
func NewCatalog(defs []models.Badge) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]models.Badge, 0, len(defs)),
		byID:    make(map[int64]models.Badge, len(defs)),
		byName:  make(map[string]models.Badge, len(defs)),
	}

	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("badge %q: %w", def.Name, err)
		}
		if _, exists := c.byID[def.ID]; exists {
			return nil, fmt.Errorf("duplicate badge id %d", def.ID)
		}
		if _, exists := c.byName[def.Name]; exists {
			return nil, fmt.Errorf("duplicate badge name %q", def.Name)
		}
		c.byID[def.ID] = def
		c.byName[def.Name] = def
		c.ordered = append(c.ordered, def)
	}

	// Stable display order: level first, name breaks ties.
	sort.Slice(c.ordered, func(i, j int) bool {
		if c.ordered[i].Level != c.ordered[j].Level {
			return c.ordered[i].Level < c.ordered[j].Level
		}
		return c.ordered[i].Name < c.ordered[j].Name
	})

	return c, nil
}

func validateDefinition(def models.Badge) error {
	if def.ID <= 0 {
		return fmt.Errorf("badge id must be positive, got %d", def.ID)
	}
	if def.Name == "" {
		return fmt.Errorf("badge name is required")
	}
	if !def.Category.IsValid() {
		return fmt.Errorf("unknown category %q", def.Category)
	}
	if def.Level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", def.Level)
	}
	if def.Criteria.Value < 1 {
		return fmt.Errorf("criteria value must be at least 1, got %d", def.Criteria.Value)
	}

	switch def.Criteria.Type {
	case models.CriteriaCount:
		// Count criteria read a category counter, so only counted
		// categories may carry them.
		if def.Category != models.CategoryBooking && def.Category != models.CategoryReview {
			return fmt.Errorf("count criteria require a booking or review category, got %q", def.Category)
		}
	case models.CriteriaMilestone:
		if def.Criteria.Target == nil {
			return fmt.Errorf("milestone criteria require a target spot")
		}
	case models.CriteriaStreak:
		// No extra fields.
	case models.CriteriaAchievement:
		if def.Criteria.Code == "" {
			return fmt.Errorf("achievement criteria require a condition code")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedCriteria, def.Criteria.Type)
	}

	return nil
}

// All returns every badge definition in stable display order.
func (c *Catalog) All() []models.Badge {
	out := make([]models.Badge, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory returns the definitions in the given category, preserving the
// catalog's display order.
func (c *Catalog) ByCategory(cat models.BadgeCategory) []models.Badge {
	var out []models.Badge
	for _, b := range c.ordered {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

// ByID looks up a definition by its identity key.
func (c *Catalog) ByID(id int64) (models.Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// ByName looks up a definition by display name.
func (c *Catalog) ByName(name string) (models.Badge, bool) {
	b, ok := c.byName[name]
	return b, ok
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
