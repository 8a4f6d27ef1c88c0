package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

const DefaultMaxStreakDays = 365

// StreakCalculator counts consecutive calendar days, ending today or
// yesterday, with at least one non-archived session of any language or
// activity type.
type StreakCalculator struct {
	sessions StudySessionRepository
	clock    clock.Clock
	loc      *time.Location
	maxDays  int
	logger   *zap.Logger
}

func NewStreakCalculator(
	sessions StudySessionRepository,
	clk clock.Clock,
	loc *time.Location,
	maxDays int,
	logger *zap.Logger,
) *StreakCalculator {
	if loc == nil {
		loc = time.UTC
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxStreakDays
	}
	return &StreakCalculator{
		sessions: sessions,
		clock:    clk,
		loc:      loc,
		maxDays:  maxDays,
		logger:   logger,
	}
}

// Compute returns the current streak or the first query error.
func (c *StreakCalculator) Compute(ctx context.Context, userID string) (int, error) {
	today := entities.StartOfDay(c.clock.Now(), c.loc)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	recent, err := c.sessions.Find(ctx, repository.SessionQuery{
		UserID: userID,
		From:   &yesterday,
		Before: &tomorrow,
	}, 0, 0)
	if err != nil {
		return 0, err
	}

	var onToday, onYesterday bool
	for _, s := range recent {
		switch {
		case entities.SameDay(s.Date, today, c.loc):
			onToday = true
		case entities.SameDay(s.Date, yesterday, c.loc):
			onYesterday = true
		}
	}

	var anchor time.Time
	switch {
	case onToday:
		anchor = today
	case onYesterday:
		anchor = yesterday
	default:
		return 0, nil
	}

	streak := 0
	for day := anchor; streak < c.maxDays; day = day.AddDate(0, 0, -1) {
		ok, err := c.sessions.ExistsBetween(ctx, userID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}
		if !ok {
			return streak, nil
		}
		streak++
	}

	c.logger.Warn("streak reached the maximum tracked length",
		zap.String("user_id", userID),
		zap.Int("max_days", c.maxDays),
	)

	return streak, nil
}

// Calculate is Compute for callers that only render: failures are logged
// and reported as a zero streak.
func (c *StreakCalculator) Calculate(ctx context.Context, userID string) int {
	streak, err := c.Compute(ctx, userID)
	if err != nil {
		c.logger.Error("failed to calculate streak",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return 0
	}
	return streak
}
