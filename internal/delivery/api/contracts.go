package api

import (
	"context"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, id, email, name string) error
}

type LanguageService interface {
	Add(ctx context.Context, userID string, in service.AddLanguageInput) (*entities.LanguageProgress, error)
	Remove(ctx context.Context, userID, languageID string, archive bool) error
	List(ctx context.Context, userID string) ([]entities.LanguageProgress, error)
}

type GoalService interface {
	List(ctx context.Context, userID, languageID string) (service.GoalList, error)
	Create(ctx context.Context, userID string, in service.CreateGoalInput) (service.GoalWithProgress, error)
	SyncOwned(ctx context.Context, userID, goalID string) (service.GoalWithProgress, error)
	Delete(ctx context.Context, userID, goalID string) error
}

type SessionService interface {
	Create(ctx context.Context, userID string, in service.SessionInput) (*entities.StudySession, error)
	Update(ctx context.Context, userID, sessionID string, in service.SessionInput) (*entities.StudySession, error)
	ToggleArchive(ctx context.Context, userID, sessionID string) (bool, error)
	List(ctx context.Context, userID string, f service.SessionFilter) (service.SessionPage, error)
}

type StatisticsService interface {
	Get(ctx context.Context, userID string, tf entities.Timeframe) (service.Statistics, error)
}

type StreakService interface {
	Get(ctx context.Context, userID string) (int, error)
}

type DashboardService interface {
	Get(ctx context.Context, userID string) service.Dashboard
}

// Services groups everything the API calls into.
type Services struct {
	Users      UserService
	Languages  LanguageService
	Goals      GoalService
	Sessions   SessionService
	Statistics StatisticsService
	Streaks    StreakService
	Dashboard  DashboardService
}
