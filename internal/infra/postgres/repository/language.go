package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres"
)

var (
	ErrLanguageNotFound        = fmt.Errorf("language %w", entities.ErrNotFound)
	ErrLanguageNotEnrolled     = fmt.Errorf("language progress %w", entities.ErrNotFound)
	ErrLanguageAlreadyEnrolled = fmt.Errorf("you are already learning this language: %w", entities.ErrConflict)
)

const uniqueViolation = "23505"

// LanguageRepository provides access to the shared language catalog.
type LanguageRepository struct {
	db postgres.DBTX
}

// NewLanguageRepository creates a new LanguageRepository.
func NewLanguageRepository(db postgres.DBTX) *LanguageRepository {
	return &LanguageRepository{db: db}
}

// GetOrCreate returns the catalog entry with lang.Code, inserting lang when
// the code is new. An existing entry keeps its name.
func (r *LanguageRepository) GetOrCreate(ctx context.Context, lang entities.Language) (entities.Language, error) {
	query := `
		INSERT INTO languages (id, name, code)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id, name, code
	`

	var out entities.Language
	err := r.db.QueryRow(ctx, query, lang.ID, lang.Name, lang.Code).Scan(&out.ID, &out.Name, &out.Code)
	if err != nil {
		return entities.Language{}, fmt.Errorf("get or create language: %w", err)
	}

	return out, nil
}

func (r *LanguageRepository) GetByCode(ctx context.Context, code string) (entities.Language, error) {
	var out entities.Language
	err := r.db.QueryRow(ctx, `SELECT id, name, code FROM languages WHERE code = $1`, code).
		Scan(&out.ID, &out.Name, &out.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Language{}, ErrLanguageNotFound
		}
		return entities.Language{}, fmt.Errorf("get language by code: %w", err)
	}

	return out, nil
}

// LanguageProgressRepository provides access to user enrollments.
type LanguageProgressRepository struct {
	db postgres.DBTX
}

// NewLanguageProgressRepository creates a new LanguageProgressRepository.
func NewLanguageProgressRepository(db postgres.DBTX) *LanguageProgressRepository {
	return &LanguageProgressRepository{db: db}
}

func (r *LanguageProgressRepository) Create(ctx context.Context, p *entities.LanguageProgress) error {
	query := `
		INSERT INTO language_progress (id, user_id, language_id, level, target_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.LanguageID,
		string(p.Level),
		string(p.TargetLevel),
		p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrLanguageAlreadyEnrolled
		}
		return fmt.Errorf("create language progress: %w", err)
	}

	return nil
}

func (r *LanguageProgressRepository) Exists(ctx context.Context, userID, languageID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM language_progress WHERE user_id = $1 AND language_id = $2)`,
		userID, languageID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("language progress exists: %w", err)
	}

	return exists, nil
}

// ListByUser returns the user's enrollments with their catalog entries.
// TotalMinutes is the sum of the user's non-archived sessions in the language.
func (r *LanguageProgressRepository) ListByUser(ctx context.Context, userID string) ([]entities.LanguageProgress, error) {
	query := `
		SELECT p.id, p.user_id, p.language_id, l.name, l.code,
		       p.level, p.target_level,
		       COALESCE((
		           SELECT SUM(s.duration)
		           FROM study_sessions s
		           WHERE s.user_id = p.user_id
		             AND s.language_id = p.language_id
		             AND NOT s.archived
		       ), 0),
		       p.created_at
		FROM language_progress p
		JOIN languages l ON l.id = p.language_id
		WHERE p.user_id = $1
		ORDER BY p.created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list language progress: %w", err)
	}
	defer rows.Close()

	var out []entities.LanguageProgress
	for rows.Next() {
		var (
			p                  entities.LanguageProgress
			level, targetLevel string
		)
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.LanguageID,
			&p.Language.Name,
			&p.Language.Code,
			&level,
			&targetLevel,
			&p.TotalMinutes,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan language progress: %w", err)
		}
		p.Language.ID = p.LanguageID
		p.Level = entities.Level(level)
		p.TargetLevel = entities.Level(targetLevel)
		out = append(out, p)
	}

	return out, rows.Err()
}

// DeleteByLanguage removes the user's enrollment in the language.
func (r *LanguageProgressRepository) DeleteByLanguage(ctx context.Context, userID, languageID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM language_progress WHERE user_id = $1 AND language_id = $2`,
		userID, languageID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete language progress: %w", err)
	}

	return tag.RowsAffected(), nil
}
