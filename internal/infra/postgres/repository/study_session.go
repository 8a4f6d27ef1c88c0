package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres"
)

var ErrSessionNotFound = fmt.Errorf("study session %w", entities.ErrNotFound)

const sessionColumns = `
	s.id, s.user_id, s.language_id, l.name, s.type, s.duration, s.date,
	s.description, s.difficulty, s.archived, s.created_at`

// StudySessionRepository provides access to study sessions in the database.
type StudySessionRepository struct {
	db postgres.DBTX
}

// NewStudySessionRepository creates a new StudySessionRepository.
func NewStudySessionRepository(db postgres.DBTX) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

func (r *StudySessionRepository) Create(ctx context.Context, s *entities.StudySession) error {
	query := `
		INSERT INTO study_sessions (
			id, user_id, language_id, type, duration, date, description, difficulty, archived, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.LanguageID,
		string(s.Type),
		s.Duration,
		s.Date,
		s.Description,
		difficultyArg(s.Difficulty),
		s.Archived,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create study session: %w", err)
	}

	return nil
}

func (r *StudySessionRepository) GetByID(ctx context.Context, id string) (*entities.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions s
		JOIN languages l ON l.id = s.language_id
		WHERE s.id = $1
	`

	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get study session: %w", err)
	}

	return s, nil
}

// Update overwrites the editable fields of a session.
func (r *StudySessionRepository) Update(ctx context.Context, s *entities.StudySession) error {
	query := `
		UPDATE study_sessions
		SET language_id = $2, type = $3, duration = $4, date = $5, description = $6, difficulty = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		s.ID,
		s.LanguageID,
		string(s.Type),
		s.Duration,
		s.Date,
		s.Description,
		difficultyArg(s.Difficulty),
	)
	if err != nil {
		return fmt.Errorf("update study session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *StudySessionRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE study_sessions SET archived = $2 WHERE id = $1`, id, archived)
	if err != nil {
		return fmt.Errorf("set study session archived: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ArchiveByLanguage archives every session of the user for the language.
func (r *StudySessionRepository) ArchiveByLanguage(ctx context.Context, userID, languageID string) (int64, error) {
	query := `
		UPDATE study_sessions SET archived = TRUE
		WHERE user_id = $1 AND language_id = $2 AND NOT archived
	`

	tag, err := r.db.Exec(ctx, query, userID, languageID)
	if err != nil {
		return 0, fmt.Errorf("archive study sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Find returns matching sessions, newest first. A limit of 0 means no limit.
func (r *StudySessionRepository) Find(ctx context.Context, q SessionQuery, limit, offset int) ([]entities.StudySession, error) {
	where, args := q.where()
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions s
		JOIN languages l ON l.id = s.language_id
		` + where + `
		ORDER BY s.date DESC, s.created_at DESC`

	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find study sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entities.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

func (r *StudySessionRepository) Count(ctx context.Context, q SessionQuery) (int, error) {
	where, args := q.where()

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM study_sessions s `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count study sessions: %w", err)
	}

	return total, nil
}

// SumDurations returns the total minutes of matching sessions, 0 when none match.
func (r *StudySessionRepository) SumDurations(ctx context.Context, q SessionQuery) (int, error) {
	where, args := q.where()

	var total int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(s.duration), 0) FROM study_sessions s `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum study session durations: %w", err)
	}

	return total, nil
}

// ExistsBetween reports whether the user has a non-archived session in [from, to).
func (r *StudySessionRepository) ExistsBetween(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM study_sessions
			WHERE user_id = $1 AND NOT archived AND date >= $2 AND date < $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("study session exists: %w", err)
	}

	return exists, nil
}

func scanSession(row pgx.Row) (*entities.StudySession, error) {
	var (
		s          entities.StudySession
		typ        string
		difficulty *string
	)

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.LanguageID,
		&s.LanguageName,
		&typ,
		&s.Duration,
		&s.Date,
		&s.Description,
		&difficulty,
		&s.Archived,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Type = entities.ActivityType(typ)
	if difficulty != nil {
		d := entities.Difficulty(*difficulty)
		s.Difficulty = &d
	}

	return &s, nil
}

func difficultyArg(d *entities.Difficulty) *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}
