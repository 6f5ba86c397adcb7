// file: internal/badges/engine.go
package badges

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"picnicquest/internal/models"
)

// ===============================
// ENGINE CONFIGURATION
// ===============================

// EngineConfig holds award engine configuration
type EngineConfig struct {
	// MaxCommitRetries bounds how many times a conflicted commit is
	// replayed from a fresh snapshot before giving up.
	MaxCommitRetries uint64 `json:"max_commit_retries"`

	// InitialRetryInterval seeds the exponential backoff between replays.
	InitialRetryInterval time.Duration `json:"initial_retry_interval"`
}

// DefaultEngineConfig returns default engine configuration
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxCommitRetries:     5,
		InitialRetryInterval: 10 * time.Millisecond,
	}
}

// ===============================
// AWARD ENGINE
// ===============================

// Engine consumes domain events and decides, atomically and exactly once
// per (user, badge), whether a user's cumulative stats now satisfy a
// badge's unlock criteria.
//
// Concurrency: calls for the same user are serialized by a per-user lock;
// calls for different users run in parallel. Catalog reads are lock-free.
type Engine struct {
	catalog *Catalog
	store   ProgressStore
	logger  *zap.Logger
	config  *EngineConfig
	locks   *userLocks

	// now is swappable in tests.
	now func() time.Time
}

// NewEngine creates an award engine over the given catalog and store.
func NewEngine(catalog *Catalog, store ProgressStore, logger *zap.Logger, config *EngineConfig) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog: catalog,
		store:   store,
		logger:  logger,
		config:  config,
		locks:   newUserLocks(),
		now:     time.Now,
	}
}

// Catalog exposes the read-only badge registry for display callers.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Handle applies one domain event to the user's stats, evaluates every
// not-yet-completed badge against the updated snapshot, and persists the
// stats and badge changes as a single atomic unit. It returns the badges
// that transitioned to completed in this call.
//
// All failures leave state unchanged. A commit conflict is retried by
// replaying the whole load-apply-evaluate-commit cycle from a freshly
// loaded snapshot, never by reapplying a stale delta.
func (e *Engine) Handle(ctx context.Context, userID int64, ev Event) ([]models.Badge, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if ev.UserID != userID {
		return nil, errors.New("badges: event user id does not match handled user")
	}

	unlock := e.locks.acquire(userID)
	defer unlock()

	var earned []models.Badge

	attempt := func() error {
		var err error
		earned, err = e.handleOnce(ctx, userID, ev)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrConflict) {
			e.logger.Warn("commit conflict, replaying from fresh snapshot",
				zap.Int64("user_id", userID),
				zap.String("event_kind", string(ev.Kind)),
			)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = e.config.InitialRetryInterval
	retries := backoff.WithMaxRetries(policy, e.config.MaxCommitRetries)

	if err := backoff.Retry(attempt, backoff.WithContext(retries, ctx)); err != nil {
		return nil, err
	}

	if len(earned) > 0 {
		names := make([]string, len(earned))
		for i, b := range earned {
			names[i] = b.Name
		}
		e.logger.Info("badges awarded",
			zap.Int64("user_id", userID),
			zap.String("event_kind", string(ev.Kind)),
			zap.Strings("badges", names),
		)
	}

	return earned, nil
}

// handleOnce runs one load-apply-evaluate-commit cycle.
func (e *Engine) handleOnce(ctx context.Context, userID int64, ev Event) ([]models.Badge, error) {
	stats, userBadges, err := e.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	newStats, err := ApplyEvent(stats, ev)
	if err != nil {
		return nil, err
	}

	completed := make(map[int64]bool, len(userBadges))
	progress := make(map[int64]int64, len(userBadges))
	for _, ub := range userBadges {
		completed[ub.BadgeID] = ub.Completed
		progress[ub.BadgeID] = ub.Progress
	}

	var (
		earned []models.Badge
		diffs  []BadgeDiff
	)
	now := e.now().UTC()

	for _, badge := range e.catalog.All() {
		if completed[badge.ID] {
			continue
		}

		eval, err := Evaluate(newStats, ev, badge)
		if err != nil {
			if errors.Is(err, ErrUnsupportedCriteria) {
				// Definition error, not an event error: skip this badge
				// without aborting the rest of the evaluation.
				e.logger.Warn("skipping unevaluable badge",
					zap.Int64("badge_id", badge.ID),
					zap.String("badge", badge.Name),
					zap.Error(err),
				)
				continue
			}
			return nil, err
		}

		if eval.Satisfied {
			earnedAt := now
			diffs = append(diffs, BadgeDiff{
				BadgeID:   badge.ID,
				Progress:  eval.Required,
				Completed: true,
				EarnedAt:  &earnedAt,
			})
			earned = append(earned, badge)
		} else if eval.Progress != progress[badge.ID] {
			diffs = append(diffs, BadgeDiff{
				BadgeID:  badge.ID,
				Progress: eval.Progress,
			})
		}
	}

	if err := e.store.CommitAtomic(ctx, userID, newStats, diffs); err != nil {
		return nil, err
	}

	return earned, nil
}

// ===============================
// PER-USER SERIALIZATION
// ===============================

// userLocks hands out one mutex per user id so concurrent events for the
// same user never interleave their read-modify-write cycles, while events
// for different users proceed in parallel.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*userLock)}
}

// acquire blocks until the caller holds the user's lock and returns the
// release function. Entries are reference-counted and dropped once the
// last holder releases, so the map does not grow with the user base.
func (l *userLocks) acquire(userID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
