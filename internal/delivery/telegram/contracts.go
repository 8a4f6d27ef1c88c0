package telegram

import (
	"context"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

type UserService interface {
	EnsureTelegramUser(ctx context.Context, telegramID, chatID int64, name string) (string, error)
}

type LanguageService interface {
	List(ctx context.Context, userID string) ([]entities.LanguageProgress, error)
}

type SessionService interface {
	Create(ctx context.Context, userID string, in service.SessionInput) (*entities.StudySession, error)
}

type GoalService interface {
	List(ctx context.Context, userID, languageID string) (service.GoalList, error)
}

type StatisticsService interface {
	Get(ctx context.Context, userID string, tf entities.Timeframe) (service.Statistics, error)
}

type StreakService interface {
	Get(ctx context.Context, userID string) (int, error)
}
