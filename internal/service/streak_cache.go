package service

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
)

const DefaultStreakTTL = time.Hour

// StreakComputer produces a fresh streak value.
type StreakComputer interface {
	Compute(ctx context.Context, userID string) (int, error)
}

type streakEntry struct {
	streak     int
	computedAt time.Time
}

// StreakCache memoizes streaks per user for a fixed TTL in a bounded LRU.
// Entries are not invalidated when sessions change, so a value can be up to
// one TTL stale. There is no per-key locking: concurrent misses for the same
// user may each recompute, and the last write wins.
type StreakCache struct {
	calc    StreakComputer
	clock   clock.Clock
	ttl     time.Duration
	entries *lru.Cache[string, streakEntry]
	logger  *zap.Logger
}

func NewStreakCache(
	calc StreakComputer,
	clk clock.Clock,
	ttl time.Duration,
	size int,
	logger *zap.Logger,
) (*StreakCache, error) {
	if ttl <= 0 {
		ttl = DefaultStreakTTL
	}

	entries, err := lru.New[string, streakEntry](size)
	if err != nil {
		return nil, fmt.Errorf("new streak cache: %w", err)
	}

	return &StreakCache{
		calc:    calc,
		clock:   clk,
		ttl:     ttl,
		entries: entries,
		logger:  logger,
	}, nil
}

// Get returns the cached streak while it is younger than the TTL and
// recomputes it otherwise. Failed computations are not cached.
func (c *StreakCache) Get(ctx context.Context, userID string) (int, error) {
	now := c.clock.Now()
	if e, ok := c.entries.Get(userID); ok && now.Sub(e.computedAt) < c.ttl {
		return e.streak, nil
	}

	streak, err := c.calc.Compute(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("compute streak: %w", err)
	}

	c.entries.Add(userID, streakEntry{streak: streak, computedAt: now})
	c.logger.Debug("streak cached",
		zap.String("user_id", userID),
		zap.Int("streak", streak),
	)

	return streak, nil
}

// Invalidate drops the cached value of a user.
func (c *StreakCache) Invalidate(userID string) {
	c.entries.Remove(userID)
}
