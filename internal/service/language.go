package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// AddLanguageInput enrolls the user in a language, creating the catalog
// entry when the code is new.
type AddLanguageInput struct {
	Name  string         `json:"name" validate:"required"`
	Code  string         `json:"code" validate:"required,len=2,alpha"`
	Level entities.Level `json:"level" validate:"required,level"`
}

type LanguageService struct {
	languages LanguageRepository
	enrolled  LanguageProgressRepository
	uow       UnitOfWork
	clock     clock.Clock
	validator *InputValidator
	logger    *zap.Logger
}

func NewLanguageService(
	languages LanguageRepository,
	enrolled LanguageProgressRepository,
	uow UnitOfWork,
	clk clock.Clock,
	validator *InputValidator,
	logger *zap.Logger,
) *LanguageService {
	return &LanguageService{
		languages: languages,
		enrolled:  enrolled,
		uow:       uow,
		clock:     clk,
		validator: validator,
		logger:    logger,
	}
}

func (s *LanguageService) Add(ctx context.Context, userID string, in AddLanguageInput) (*entities.LanguageProgress, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToLower(strings.TrimSpace(in.Code))
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	lang, err := s.languages.GetOrCreate(ctx, entities.Language{
		ID:   uuid.NewString(),
		Name: in.Name,
		Code: in.Code,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.enrolled.Exists(ctx, userID, lang.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("you are already learning this language: %w", entities.ErrConflict)
	}

	progress := entities.NewLanguageProgress(uuid.NewString(), userID, lang, in.Level, s.clock.Now())
	if err := s.enrolled.Create(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("language added",
		zap.String("user_id", userID),
		zap.String("code", lang.Code),
	)

	return progress, nil
}

// Remove drops the user's enrollment. With archive set, the user's goals
// and sessions for the language are archived in the same transaction;
// without it they are left untouched.
func (s *LanguageService) Remove(ctx context.Context, userID, languageID string, archive bool) error {
	err := s.uow.Do(ctx, func(ctx context.Context, st Stores) error {
		if archive {
			goals, err := st.Goals.ArchiveByLanguage(ctx, userID, languageID)
			if err != nil {
				return err
			}
			sessions, err := st.Sessions.ArchiveByLanguage(ctx, userID, languageID)
			if err != nil {
				return err
			}
			s.logger.Debug("language history archived",
				zap.String("user_id", userID),
				zap.String("language_id", languageID),
				zap.Int64("goals", goals),
				zap.Int64("sessions", sessions),
			)
		}

		if _, err := st.Progress.DeleteByLanguage(ctx, userID, languageID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("remove language: %w", err)
	}

	s.logger.Info("language removed",
		zap.String("user_id", userID),
		zap.String("language_id", languageID),
		zap.Bool("archived", archive),
	)

	return nil
}

func (s *LanguageService) List(ctx context.Context, userID string) ([]entities.LanguageProgress, error) {
	return s.enrolled.ListByUser(ctx, userID)
}
