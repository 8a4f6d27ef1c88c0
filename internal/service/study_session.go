package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SessionInput describes a session to log or the new state of an edited
// one. Duration is either DurationMinutes or Hours and Minutes.
type SessionInput struct {
	LanguageID      string                `json:"languageId" validate:"required"`
	Type            entities.ActivityType `json:"type" validate:"required,activity"`
	Date            time.Time             `json:"date" validate:"required"`
	DurationMinutes int                   `json:"duration" validate:"gte=0"`
	Hours           int                   `json:"hours" validate:"gte=0,lte=5000"`
	Minutes         int                   `json:"minutes" validate:"gte=0,lte=59"`
	Description     string                `json:"description" validate:"max=1000"`
	Difficulty      *entities.Difficulty  `json:"difficulty" validate:"omitnil,difficulty"`
}

func (in SessionInput) duration() int {
	if in.DurationMinutes > 0 {
		return in.DurationMinutes
	}
	return entities.ToMinutes(in.Hours, in.Minutes)
}

// SessionFilter selects a page of the user's sessions.
type SessionFilter struct {
	LanguageID string
	Type       entities.ActivityType
	Search     string
	Archived   bool
	Page       int
	Limit      int
}

type Pagination struct {
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Current int `json:"current"`
}

type SessionPage struct {
	Sessions   []entities.StudySession `json:"sessions"`
	Pagination Pagination              `json:"pagination"`
}

// GoalSyncer keeps goal statuses in line with session history.
type GoalSyncer interface {
	SyncAffected(ctx context.Context, userID, languageID string, activity entities.ActivityType) error
}

type StudySessionService struct {
	sessions  StudySessionRepository
	enrolled  LanguageProgressRepository
	goals     GoalSyncer
	clock     clock.Clock
	validator *InputValidator
	logger    *zap.Logger
}

func NewStudySessionService(
	sessions StudySessionRepository,
	enrolled LanguageProgressRepository,
	goals GoalSyncer,
	clk clock.Clock,
	validator *InputValidator,
	logger *zap.Logger,
) *StudySessionService {
	return &StudySessionService{
		sessions:  sessions,
		enrolled:  enrolled,
		goals:     goals,
		clock:     clk,
		validator: validator,
		logger:    logger,
	}
}

func (s *StudySessionService) validate(in SessionInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	if in.duration() <= 0 {
		return fmt.Errorf("%w: total duration must be greater than 0", entities.ErrValidation)
	}
	return nil
}

// checkEnrolled rejects sessions for a language the user is not learning.
func (s *StudySessionService) checkEnrolled(ctx context.Context, userID, languageID string) error {
	ok, err := s.enrolled.Exists(ctx, userID, languageID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: language is not in your list", entities.ErrValidation)
	}
	return nil
}

// Create logs a session and re-syncs the goals it feeds.
func (s *StudySessionService) Create(ctx context.Context, userID string, in SessionInput) (*entities.StudySession, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if err := s.checkEnrolled(ctx, userID, in.LanguageID); err != nil {
		return nil, err
	}

	sess := &entities.StudySession{
		ID:          uuid.NewString(),
		UserID:      userID,
		LanguageID:  in.LanguageID,
		Type:        in.Type,
		Duration:    in.duration(),
		Date:        in.Date,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.goals.SyncAffected(ctx, userID, sess.LanguageID, sess.Type); err != nil {
		return nil, fmt.Errorf("session saved, goal sync failed: %w", err)
	}

	s.logger.Info("study session logged",
		zap.String("user_id", userID),
		zap.String("session_id", sess.ID),
		zap.String("type", string(sess.Type)),
		zap.Int("minutes", sess.Duration),
	)

	return sess, nil
}

// Update edits a session of the user. A session owned by someone else is
// reported as not found. Goals of both the old and the new language and
// activity type are re-synced.
func (s *StudySessionService) Update(ctx context.Context, userID, sessionID string, in SessionInput) (*entities.StudySession, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, repository.ErrSessionNotFound
	}
	if in.LanguageID != sess.LanguageID {
		if err := s.checkEnrolled(ctx, userID, in.LanguageID); err != nil {
			return nil, err
		}
	}

	oldLanguage, oldType := sess.LanguageID, sess.Type

	sess.LanguageID = in.LanguageID
	sess.Type = in.Type
	sess.Duration = in.duration()
	sess.Date = in.Date
	sess.Description = in.Description
	sess.Difficulty = in.Difficulty

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.goals.SyncAffected(ctx, userID, sess.LanguageID, sess.Type); err != nil {
		return nil, fmt.Errorf("session saved, goal sync failed: %w", err)
	}
	if oldLanguage != sess.LanguageID || oldType != sess.Type {
		if err := s.goals.SyncAffected(ctx, userID, oldLanguage, oldType); err != nil {
			return nil, fmt.Errorf("session saved, goal sync failed: %w", err)
		}
	}

	return sess, nil
}

// ToggleArchive flips the archived flag of the user's session and returns
// the new value.
func (s *StudySessionService) ToggleArchive(ctx context.Context, userID, sessionID string) (bool, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if sess.UserID != userID {
		return false, fmt.Errorf("archive session %s: %w", sessionID, entities.ErrUnauthorized)
	}

	archived := !sess.Archived
	if err := s.sessions.SetArchived(ctx, sessionID, archived); err != nil {
		return false, err
	}

	if err := s.goals.SyncAffected(ctx, userID, sess.LanguageID, sess.Type); err != nil {
		return false, fmt.Errorf("session archived, goal sync failed: %w", err)
	}

	return archived, nil
}

// List returns one page of the user's sessions, newest first.
func (s *StudySessionService) List(ctx context.Context, userID string, f SessionFilter) (SessionPage, error) {
	page := max(f.Page, 1)
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)

	q := repository.SessionQuery{
		UserID:     userID,
		LanguageID: f.LanguageID,
		Type:       f.Type,
		Search:     f.Search,
		Archived:   f.Archived,
	}

	sessions, err := s.sessions.Find(ctx, q, limit, (page-1)*limit)
	if err != nil {
		return SessionPage{}, err
	}
	total, err := s.sessions.Count(ctx, q)
	if err != nil {
		return SessionPage{}, err
	}

	if sessions == nil {
		sessions = []entities.StudySession{}
	}

	return SessionPage{
		Sessions: sessions,
		Pagination: Pagination{
			Total:   total,
			Pages:   (total + limit - 1) / limit,
			Current: page,
		},
	}, nil
}

// Recent returns the user's latest non-archived sessions.
func (s *StudySessionService) Recent(ctx context.Context, userID string, limit int) ([]entities.StudySession, error) {
	page, err := s.List(ctx, userID, SessionFilter{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Sessions, nil
}
