// file: internal/services/badge_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/badges"
	"picnicquest/internal/cache"
	"picnicquest/internal/events"
	"picnicquest/internal/models"
	"picnicquest/internal/repositories"
)

const badgeSummaryTTL = 5 * time.Minute

// badgeService implements BadgeService. User summaries are cached and
// invalidated whenever an activity event lands for the user.
type badgeService struct {
	catalog  *badges.Catalog
	progress repositories.ProgressRepository
	cache    cache.Cache
	logger   *zap.Logger
}

// NewBadgeService creates a new badge service and subscribes it for
// cache invalidation.
func NewBadgeService(
	catalog *badges.Catalog,
	progress repositories.ProgressRepository,
	c cache.Cache,
	bus events.EventBus,
	logger *zap.Logger,
) BadgeService {
	s := &badgeService{
		catalog:  catalog,
		progress: progress,
		cache:    c,
		logger:   logger,
	}

	invalidate := events.NewEventHandlerFunc("badge_summary_invalidator",
		func(ctx context.Context, ev events.Event) error {
			if userID := ev.GetUserID(); userID != nil {
				return s.cache.Delete(ctx, summaryCacheKey(*userID))
			}
			return nil
		})

	for _, eventType := range []string{
		events.TypeBookingCreated,
		events.TypeReviewSubmitted,
		events.TypeBadgeEarned,
	} {
		if err := bus.Subscribe(eventType, invalidate); err != nil {
			logger.Warn("Failed to subscribe badge cache invalidator",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}

	return s
}

// Catalog returns every badge definition, ordered by level then name
func (s *badgeService) Catalog(ctx context.Context) []models.Badge {
	return s.catalog.All()
}

// GetUserBadges returns the full badge board for a user: every catalog
// badge paired with the user's progress.
func (s *badgeService) GetUserBadges(ctx context.Context, userID int64) (*UserBadgeSummary, error) {
	key := summaryCacheKey(userID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		if summary := summaryFromCache(cached); summary != nil {
			return summary, nil
		}
	}

	stats, userBadges, err := s.progress.Load(ctx, userID)
	if err != nil {
		if err == badges.ErrUnknownUser {
			return nil, EntityNotFoundError("user", userID)
		}
		return nil, NewInternalError("failed to load badge progress")
	}

	byBadge := make(map[int64]models.UserBadge, len(userBadges))
	for _, ub := range userBadges {
		byBadge[ub.BadgeID] = ub
	}

	summary := &UserBadgeSummary{
		Badges:     make([]BadgeProgress, 0, s.catalog.Len()),
		TotalCount: s.catalog.Len(),
		Stats:      stats,
	}

	for _, badge := range s.catalog.All() {
		bp := BadgeProgress{
			Badge:    badge,
			Required: badge.Criteria.Value,
		}
		if ub, ok := byBadge[badge.ID]; ok {
			bp.Progress = ub.Progress
			bp.Completed = ub.Completed
			bp.EarnedAt = ub.EarnedAt
		}
		if bp.Completed {
			summary.EarnedCount++
		}
		summary.Badges = append(summary.Badges, bp)
	}

	if err := s.cache.Set(ctx, key, summary, badgeSummaryTTL); err != nil {
		s.logger.Warn("Failed to cache badge summary",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return summary, nil
}

// GetUserStats returns the user's cumulative stats snapshot together
// with the number of badges earned so far.
func (s *badgeService) GetUserStats(ctx context.Context, userID int64) (*UserStatsSummary, error) {
	stats, err := s.progress.GetStats(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user stats")
	}
	if stats == nil {
		return nil, EntityNotFoundError("user", userID)
	}

	earned, err := s.progress.CountCompleted(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to count earned badges")
	}

	return &UserStatsSummary{Stats: stats, EarnedBadges: earned}, nil
}

func summaryCacheKey(userID int64) string {
	return fmt.Sprintf("badges:summary:%d", userID)
}

// summaryFromCache recovers a summary from whatever shape the cache
// provider hands back: the stored pointer from the in-memory provider,
// or the JSON-decoded form from Redis.
func summaryFromCache(cached interface{}) *UserBadgeSummary {
	switch v := cached.(type) {
	case *UserBadgeSummary:
		return v
	case []byte:
		return unmarshalSummary(v)
	case string:
		return unmarshalSummary([]byte(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return unmarshalSummary(data)
	}
}

func unmarshalSummary(data []byte) *UserBadgeSummary {
	var summary UserBadgeSummary
	if err := json.Unmarshal(data, &summary); err != nil || len(summary.Badges) == 0 {
		return nil
	}
	return &summary
}
