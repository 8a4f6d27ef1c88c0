package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

const progressConcurrency = 4

// GoalWithProgress is a goal with its accumulated minutes and derived status.
type GoalWithProgress struct {
	entities.Goal
	Progress int     `json:"progress"`
	Percent  float64 `json:"percent"`
}

// GoalList is the goals view: goals plus their summary.
type GoalList struct {
	Goals   []GoalWithProgress `json:"goals"`
	Summary GoalSummary        `json:"summary"`
}

// CreateGoalInput describes a new goal. The target is either TargetMinutes
// or Hours and Minutes; it must come to at least one minute.
type CreateGoalInput struct {
	LanguageID    string                `json:"languageId" validate:"required"`
	ActivityType  entities.ActivityType `json:"activityType" validate:"required,activity"`
	TargetMinutes int                   `json:"target" validate:"gte=0"`
	Hours         int                   `json:"hours" validate:"gte=0,lte=5000"`
	Minutes       int                   `json:"minutes" validate:"gte=0,lte=59"`
	Deadline      *time.Time            `json:"deadline"`
}

func (in CreateGoalInput) target() int {
	if in.TargetMinutes > 0 {
		return in.TargetMinutes
	}
	return entities.ToMinutes(in.Hours, in.Minutes)
}

type GoalService struct {
	goals     GoalRepository
	sessions  StudySessionRepository
	enrolled  LanguageProgressRepository
	streaks   StreakSource
	clock     clock.Clock
	validator *InputValidator
	logger    *zap.Logger
}

func NewGoalService(
	goals GoalRepository,
	sessions StudySessionRepository,
	enrolled LanguageProgressRepository,
	streaks StreakSource,
	clk clock.Clock,
	validator *InputValidator,
	logger *zap.Logger,
) *GoalService {
	return &GoalService{
		goals:     goals,
		sessions:  sessions,
		enrolled:  enrolled,
		streaks:   streaks,
		clock:     clk,
		validator: validator,
		logger:    logger,
	}
}

// Progress sums the non-archived sessions counting towards the goal, up to
// and including its deadline when one is set.
func (s *GoalService) Progress(ctx context.Context, goal entities.Goal) (int, error) {
	total, err := s.sessions.SumDurations(ctx, repository.SessionQuery{
		UserID:     goal.UserID,
		LanguageID: goal.LanguageID,
		Type:       goal.ActivityType,
		Until:      goal.Deadline,
	})
	if err != nil {
		return 0, fmt.Errorf("goal progress: %w", err)
	}
	return total, nil
}

// SyncStatus recomputes a goal's status and stores it when it changed.
// Calling it again with unchanged history writes nothing.
func (s *GoalService) SyncStatus(ctx context.Context, goalID string) (GoalWithProgress, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return GoalWithProgress{}, err
	}
	return s.sync(ctx, *goal)
}

// SyncOwned is SyncStatus for a goal that must belong to the user.
func (s *GoalService) SyncOwned(ctx context.Context, userID, goalID string) (GoalWithProgress, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return GoalWithProgress{}, err
	}
	if goal.UserID != userID {
		return GoalWithProgress{}, fmt.Errorf("sync goal %s: %w", goalID, entities.ErrUnauthorized)
	}
	return s.sync(ctx, *goal)
}

func (s *GoalService) sync(ctx context.Context, goal entities.Goal) (GoalWithProgress, error) {
	progress, err := s.Progress(ctx, goal)
	if err != nil {
		return GoalWithProgress{}, err
	}

	status := entities.DeriveGoalStatus(progress, goal.TargetMinutes)
	if status != goal.Status {
		if err := s.goals.UpdateStatus(ctx, goal.ID, status); err != nil {
			return GoalWithProgress{}, err
		}
		s.logger.Debug("goal status changed",
			zap.String("goal_id", goal.ID),
			zap.String("from", string(goal.Status)),
			zap.String("to", string(status)),
		)
		goal.Status = status
	}

	return withProgress(goal, progress), nil
}

// SyncAffected re-syncs every active goal fed by sessions of the language
// and activity type.
func (s *GoalService) SyncAffected(ctx context.Context, userID, languageID string, activity entities.ActivityType) error {
	goals, err := s.goals.ListAffected(ctx, userID, languageID, activity)
	if err != nil {
		return err
	}

	for _, g := range goals {
		if _, err := s.sync(ctx, g); err != nil {
			return fmt.Errorf("sync goal %s: %w", g.ID, err)
		}
	}

	return nil
}

// List returns the user's active goals with progress, optionally for a
// single language. Status is derived in memory; nothing is written.
func (s *GoalService) List(ctx context.Context, userID, languageID string) (GoalList, error) {
	goals, err := s.goals.ListByUser(ctx, userID, languageID)
	if err != nil {
		return GoalList{}, err
	}

	out := make([]GoalWithProgress, len(goals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(progressConcurrency)
	for i, goal := range goals {
		g.Go(func() error {
			progress, err := s.Progress(gctx, goal)
			if err != nil {
				return err
			}
			goal.Status = entities.DeriveGoalStatus(progress, goal.TargetMinutes)
			out[i] = withProgress(goal, progress)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GoalList{}, err
	}

	summary := Summarize(out)
	summary.CurrentStreak = s.currentStreak(ctx, userID)

	return GoalList{Goals: out, Summary: summary}, nil
}

func (s *GoalService) currentStreak(ctx context.Context, userID string) int {
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get streak", zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	return streak
}

// Create stores a new goal for an enrolled language. Its status reflects
// the sessions already logged.
func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (GoalWithProgress, error) {
	if err := s.validator.Validate(in); err != nil {
		return GoalWithProgress{}, err
	}

	target := in.target()
	if target < 1 {
		return GoalWithProgress{}, fmt.Errorf("%w: target duration must be greater than 0", entities.ErrValidation)
	}

	ok, err := s.enrolled.Exists(ctx, userID, in.LanguageID)
	if err != nil {
		return GoalWithProgress{}, err
	}
	if !ok {
		return GoalWithProgress{}, fmt.Errorf("%w: language is not in your list", entities.ErrValidation)
	}

	now := s.clock.Now().UTC()
	goal := entities.Goal{
		ID:            uuid.NewString(),
		UserID:        userID,
		LanguageID:    in.LanguageID,
		ActivityType:  in.ActivityType,
		TargetMinutes: target,
		Deadline:      in.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	progress, err := s.Progress(ctx, goal)
	if err != nil {
		return GoalWithProgress{}, err
	}
	goal.Status = entities.DeriveGoalStatus(progress, target)

	if err := s.goals.Create(ctx, &goal); err != nil {
		return GoalWithProgress{}, err
	}

	s.logger.Info("goal created",
		zap.String("user_id", userID),
		zap.String("goal_id", goal.ID),
		zap.Int("target_minutes", target),
	)

	return withProgress(goal, progress), nil
}

// Delete removes a goal owned by the user.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return fmt.Errorf("delete goal %s: %w", goalID, entities.ErrUnauthorized)
	}

	return s.goals.Delete(ctx, goalID)
}

func withProgress(goal entities.Goal, progress int) GoalWithProgress {
	return GoalWithProgress{
		Goal:     goal,
		Progress: progress,
		Percent:  goal.Percent(progress),
	}
}
