package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

const dayLayout = "2006-01-02"

// DailyActivity holds the minutes of one calendar day for the four skill
// activities. Other activity types count towards totals only.
type DailyActivity struct {
	Date      string `json:"date"`
	Reading   int    `json:"reading"`
	Listening int    `json:"listening"`
	Speaking  int    `json:"speaking"`
	Writing   int    `json:"writing"`
}

// Statistics summarizes a timeframe ending today.
type Statistics struct {
	Timeframe            entities.Timeframe            `json:"timeframe"`
	Days                 int                           `json:"days"`
	Daily                []DailyActivity               `json:"daily"`
	Distribution         map[entities.ActivityType]int `json:"distribution"`
	TotalMinutes         int                           `json:"totalMinutes"`
	AverageMinutesPerDay int                           `json:"averageMinutesPerDay"`
	CurrentStreak        int                           `json:"currentStreak"`
}

// EmptyStatistics is the safe default rendered when statistics cannot be loaded.
func EmptyStatistics(tf entities.Timeframe) Statistics {
	return Statistics{
		Timeframe:    tf,
		Days:         tf.Days(),
		Daily:        []DailyActivity{},
		Distribution: map[entities.ActivityType]int{},
	}
}

type StatisticsService struct {
	sessions StudySessionRepository
	streaks  StreakSource
	clock    clock.Clock
	loc      *time.Location
	logger   *zap.Logger
}

func NewStatisticsService(
	sessions StudySessionRepository,
	streaks StreakSource,
	clk clock.Clock,
	loc *time.Location,
	logger *zap.Logger,
) *StatisticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatisticsService{
		sessions: sessions,
		streaks:  streaks,
		clock:    clk,
		loc:      loc,
		logger:   logger,
	}
}

// Get aggregates the user's non-archived sessions over the timeframe into a
// dense daily series, per-type distribution, total and rounded daily average.
func (s *StatisticsService) Get(ctx context.Context, userID string, tf entities.Timeframe) (Statistics, error) {
	days := tf.Days()
	today := entities.StartOfDay(s.clock.Now(), s.loc)
	from := today.AddDate(0, 0, -(days - 1))
	before := today.AddDate(0, 0, 1)

	sessions, err := s.sessions.Find(ctx, repository.SessionQuery{
		UserID: userID,
		From:   &from,
		Before: &before,
	}, 0, 0)
	if err != nil {
		return Statistics{}, fmt.Errorf("load sessions for statistics: %w", err)
	}

	stats := EmptyStatistics(tf)
	stats.Daily = make([]DailyActivity, days)
	index := make(map[string]int, days)
	for i := range days {
		key := from.AddDate(0, 0, i).Format(dayLayout)
		stats.Daily[i] = DailyActivity{Date: key}
		index[key] = i
	}

	for _, sess := range sessions {
		stats.TotalMinutes += sess.Duration
		stats.Distribution[sess.Type] += sess.Duration

		i, ok := index[sess.Date.In(s.loc).Format(dayLayout)]
		if !ok {
			continue
		}
		day := &stats.Daily[i]
		switch sess.Type {
		case entities.ActivityReading:
			day.Reading += sess.Duration
		case entities.ActivityListening:
			day.Listening += sess.Duration
		case entities.ActivitySpeaking:
			day.Speaking += sess.Duration
		case entities.ActivityWriting:
			day.Writing += sess.Duration
		}
	}

	stats.AverageMinutesPerDay = int(math.Round(float64(stats.TotalMinutes) / float64(days)))

	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get streak for statistics",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		streak = 0
	}
	stats.CurrentStreak = streak

	return stats, nil
}
