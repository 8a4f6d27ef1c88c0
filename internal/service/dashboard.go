package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

const recentSessionsOnDashboard = 5

// Dashboard is the landing view. Every part has a safe default; Errors
// lists the parts that fell back to it.
type Dashboard struct {
	Goals          []GoalWithProgress      `json:"goals"`
	Summary        GoalSummary             `json:"summary"`
	RecentSessions []entities.StudySession `json:"recentSessions"`
	Statistics     Statistics              `json:"statistics"`
	Errors         []string                `json:"errors,omitempty"`
}

type (
	GoalLister interface {
		List(ctx context.Context, userID, languageID string) (GoalList, error)
	}
	RecentSessionLister interface {
		Recent(ctx context.Context, userID string, limit int) ([]entities.StudySession, error)
	}
	StatisticsProvider interface {
		Get(ctx context.Context, userID string, tf entities.Timeframe) (Statistics, error)
	}
)

type DashboardService struct {
	goals    GoalLister
	sessions RecentSessionLister
	stats    StatisticsProvider
	logger   *zap.Logger
}

func NewDashboardService(
	goals GoalLister,
	sessions RecentSessionLister,
	stats StatisticsProvider,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		goals:    goals,
		sessions: sessions,
		stats:    stats,
		logger:   logger,
	}
}

// Get loads goals, recent sessions and weekly statistics concurrently. It
// never fails: a part that cannot be loaded is logged, left at its default
// and named in Errors.
func (s *DashboardService) Get(ctx context.Context, userID string) Dashboard {
	d := Dashboard{
		Goals:          []GoalWithProgress{},
		RecentSessions: []entities.StudySession{},
		Statistics:     EmptyStatistics(entities.TimeframeWeek),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	fail := func(part string, err error) {
		s.logger.Error("dashboard part unavailable",
			zap.String("user_id", userID),
			zap.String("part", part),
			zap.Error(err),
		)
		mu.Lock()
		d.Errors = append(d.Errors, part+" unavailable")
		mu.Unlock()
	}

	g.Go(func() error {
		list, err := s.goals.List(ctx, userID, "")
		if err != nil {
			fail("goals", err)
			return nil
		}
		d.Goals, d.Summary = list.Goals, list.Summary
		return nil
	})
	g.Go(func() error {
		recent, err := s.sessions.Recent(ctx, userID, recentSessionsOnDashboard)
		if err != nil {
			fail("sessions", err)
			return nil
		}
		d.RecentSessions = recent
		return nil
	})
	g.Go(func() error {
		stats, err := s.stats.Get(ctx, userID, entities.TimeframeWeek)
		if err != nil {
			fail("statistics", err)
			return nil
		}
		d.Statistics = stats
		return nil
	})
	_ = g.Wait()

	if d.Goals == nil {
		d.Goals = []GoalWithProgress{}
	}

	return d
}
