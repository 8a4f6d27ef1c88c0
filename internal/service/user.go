package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

type UserService struct {
	userRepo UserRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, clk clock.Clock, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, clock: clk, logger: logger}
}

// EnsureUser makes sure the authenticated user has a row to own records.
func (s *UserService) EnsureUser(ctx context.Context, id, email, name string) error {
	created, err := s.userRepo.Save(ctx, entities.NewUser(id, email, name, s.clock.Now()))
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("user registered", zap.String("user_id", id))
	}
	return nil
}

// EnsureTelegramUser registers a bot user and remembers the chat for reminders.
func (s *UserService) EnsureTelegramUser(ctx context.Context, telegramID, chatID int64, name string) (string, error) {
	user := entities.NewUser(entities.TelegramUserID(telegramID), "", name, s.clock.Now())
	user.TelegramChatID = &chatID

	created, err := s.userRepo.Save(ctx, user)
	if err != nil {
		return "", err
	}
	if created {
		s.logger.Info("telegram user registered",
			zap.String("user_id", user.ID),
			zap.Int64("chat_id", chatID),
		)
	}

	return user.ID, nil
}
