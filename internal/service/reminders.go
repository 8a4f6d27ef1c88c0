package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

const DefaultReminderSchedule = "0 19 * * *"

var ErrNotifierNotSet = errors.New("reminder notifier is not set")

// ReminderService nudges Telegram users whose streak is still alive but who
// have not studied yet today.
type ReminderService struct {
	users    UserRepository
	sessions StudySessionRepository
	streaks  StreakSource
	notifier ReminderNotifier
	clock    clock.Clock
	loc      *time.Location
	schedule string
	logger   *zap.Logger
}

func NewReminderService(
	users UserRepository,
	sessions StudySessionRepository,
	streaks StreakSource,
	clk clock.Clock,
	loc *time.Location,
	schedule string,
	logger *zap.Logger,
) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &ReminderService{
		users:    users,
		sessions: sessions,
		streaks:  streaks,
		clock:    clk,
		loc:      loc,
		schedule: schedule,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder job on its cron schedule until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))

	_, err := c.AddFunc(s.schedule, func() {
		sent, err := s.SendDue(ctx)
		if err != nil {
			s.logger.Error("failed to send streak reminders", zap.Error(err))
			return
		}
		s.logger.Info("streak reminders processed", zap.Int("sent", sent))
	})
	if err != nil {
		return fmt.Errorf("add reminder job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder scheduler stopped")

	return nil
}

// SendDue sends a reminder to every Telegram user with a positive streak
// and no session today. It returns how many reminders went out.
func (s *ReminderService) SendDue(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, ErrNotifierNotSet
	}

	users, err := s.users.ListWithTelegram(ctx)
	if err != nil {
		return 0, err
	}

	today := entities.StartOfDay(s.clock.Now(), s.loc)
	tomorrow := today.AddDate(0, 0, 1)

	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)

	for _, u := range users {
		if u.TelegramChatID == nil {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := s.remind(ctx, u, today, tomorrow)
			if err != nil {
				s.logger.Error("failed to process reminder",
					zap.String("user_id", u.ID),
					zap.Error(err),
				)
				return
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	return sent, nil
}

func (s *ReminderService) remind(ctx context.Context, u entities.User, today, tomorrow time.Time) (bool, error) {
	studied, err := s.sessions.ExistsBetween(ctx, u.ID, today, tomorrow)
	if err != nil {
		return false, err
	}
	if studied {
		return false, nil
	}

	streak, err := s.streaks.Get(ctx, u.ID)
	if err != nil {
		return false, err
	}
	if streak == 0 {
		return false, nil
	}

	payload := entities.ReminderPayload{UserName: u.Name, CurrentStreak: streak}
	if err := s.notifier.SendReminder(*u.TelegramChatID, payload); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}

	return true, nil
}
