package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres"
)

var ErrGoalNotFound = fmt.Errorf("goal %w", entities.ErrNotFound)

const goalColumns = `
	g.id, g.user_id, g.language_id, l.name, g.activity_type, g.target_minutes,
	g.deadline, g.status, g.archived, g.created_at, g.updated_at`

// GoalRepository provides access to goals in the database.
type GoalRepository struct {
	db postgres.DBTX
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db postgres.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, g *entities.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, language_id, activity_type, target_minutes, deadline, status, archived, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		g.ID,
		g.UserID,
		g.LanguageID,
		string(g.ActivityType),
		g.TargetMinutes,
		g.Deadline,
		string(g.Status),
		g.Archived,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id string) (*entities.Goal, error) {
	query := `SELECT ` + goalColumns + `
		FROM goals g
		JOIN languages l ON l.id = g.language_id
		WHERE g.id = $1
	`

	g, err := scanGoal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}

	return g, nil
}

// ListByUser returns the user's non-archived goals, optionally for one language.
func (r *GoalRepository) ListByUser(ctx context.Context, userID, languageID string) ([]entities.Goal, error) {
	query := `SELECT ` + goalColumns + `
		FROM goals g
		JOIN languages l ON l.id = g.language_id
		WHERE g.user_id = $1
		  AND NOT g.archived
		  AND ($2 = '' OR g.language_id = $2)
		ORDER BY g.created_at DESC
	`

	return r.list(ctx, "list goals", query, userID, languageID)
}

// ListAffected returns non-archived goals whose progress depends on sessions
// of the given language and activity type.
func (r *GoalRepository) ListAffected(ctx context.Context, userID, languageID string, activity entities.ActivityType) ([]entities.Goal, error) {
	query := `SELECT ` + goalColumns + `
		FROM goals g
		JOIN languages l ON l.id = g.language_id
		WHERE g.user_id = $1 AND g.language_id = $2 AND g.activity_type = $3 AND NOT g.archived
	`

	return r.list(ctx, "list affected goals", query, userID, languageID, string(activity))
}

func (r *GoalRepository) list(ctx context.Context, op, query string, args ...any) ([]entities.Goal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var goals []entities.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *g)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) UpdateStatus(ctx context.Context, id string, status entities.GoalStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE goals SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update goal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// ArchiveByLanguage archives every goal of the user for the language.
func (r *GoalRepository) ArchiveByLanguage(ctx context.Context, userID, languageID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE goals SET archived = TRUE, updated_at = NOW() WHERE user_id = $1 AND language_id = $2 AND NOT archived`,
		userID, languageID,
	)
	if err != nil {
		return 0, fmt.Errorf("archive goals: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func scanGoal(row pgx.Row) (*entities.Goal, error) {
	var (
		g        entities.Goal
		activity string
		status   string
	)

	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.LanguageID,
		&g.LanguageName,
		&activity,
		&g.TargetMinutes,
		&g.Deadline,
		&status,
		&g.Archived,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.ActivityType = entities.ActivityType(activity)
	g.Status = entities.GoalStatus(status)

	return &g, nil
}
