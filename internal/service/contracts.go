package service

import (
	"context"
	"time"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	ListWithTelegram(ctx context.Context) ([]entities.User, error)
}

type LanguageRepository interface {
	GetOrCreate(ctx context.Context, lang entities.Language) (entities.Language, error)
}

type LanguageProgressRepository interface {
	Create(ctx context.Context, p *entities.LanguageProgress) error
	Exists(ctx context.Context, userID, languageID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]entities.LanguageProgress, error)
	DeleteByLanguage(ctx context.Context, userID, languageID string) (int64, error)
}

type GoalRepository interface {
	Create(ctx context.Context, g *entities.Goal) error
	GetByID(ctx context.Context, id string) (*entities.Goal, error)
	ListByUser(ctx context.Context, userID, languageID string) ([]entities.Goal, error)
	ListAffected(ctx context.Context, userID, languageID string, activity entities.ActivityType) ([]entities.Goal, error)
	UpdateStatus(ctx context.Context, id string, status entities.GoalStatus) error
	ArchiveByLanguage(ctx context.Context, userID, languageID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type StudySessionRepository interface {
	Create(ctx context.Context, s *entities.StudySession) error
	GetByID(ctx context.Context, id string) (*entities.StudySession, error)
	Update(ctx context.Context, s *entities.StudySession) error
	SetArchived(ctx context.Context, id string, archived bool) error
	ArchiveByLanguage(ctx context.Context, userID, languageID string) (int64, error)
	Find(ctx context.Context, q repository.SessionQuery, limit, offset int) ([]entities.StudySession, error)
	Count(ctx context.Context, q repository.SessionQuery) (int, error)
	SumDurations(ctx context.Context, q repository.SessionQuery) (int, error)
	ExistsBetween(ctx context.Context, userID string, from, to time.Time) (bool, error)
}

// Stores are the repositories available inside a unit of work. Everything
// written through them commits or rolls back together.
type Stores struct {
	Goals    GoalRepository
	Sessions StudySessionRepository
	Progress LanguageProgressRepository
}

// UnitOfWork runs fn atomically.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}

// StreakSource answers the current streak of a user, possibly from cache.
type StreakSource interface {
	Get(ctx context.Context, userID string) (int, error)
}

// ReminderNotifier delivers a streak reminder to a chat.
type ReminderNotifier interface {
	SendReminder(chatID int64, payload entities.ReminderPayload) error
}
