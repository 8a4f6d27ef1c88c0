package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
	"github.com/aliskhannn/lingua-tracker/internal/config"
	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// App holds the services shared by the HTTP API and the bot.
type App struct {
	Pool     *pgxpool.Pool
	Location *time.Location
	Clock    clock.Clock
	Logger   *zap.Logger

	Users      *service.UserService
	Languages  *service.LanguageService
	Goals      *service.GoalService
	Sessions   *service.StudySessionService
	Statistics *service.StatisticsService
	Streaks    *service.StreakCache
	Dashboard  *service.DashboardService
	Reminders  *service.ReminderService
}

// New connects to the database and wires repositories into services.
// Close releases the pool.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	loc, err := entities.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.App.Timezone, err)
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	clk := clock.System{Location: loc}
	validate := service.NewInputValidator()

	userRepo := repository.NewUserRepository(pool)
	languageRepo := repository.NewLanguageRepository(pool)
	progressRepo := repository.NewLanguageProgressRepository(pool)
	goalRepo := repository.NewGoalRepository(pool)
	sessionRepo := repository.NewStudySessionRepository(pool)

	calc := service.NewStreakCalculator(sessionRepo, clk, loc, cfg.Streak.MaxDays, logger)
	streaks, err := service.NewStreakCache(calc, clk, cfg.Streak.CacheTTL, cfg.Streak.CacheSize, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create streak cache: %w", err)
	}

	goals := service.NewGoalService(goalRepo, sessionRepo, progressRepo, streaks, clk, validate, logger)
	sessions := service.NewStudySessionService(sessionRepo, progressRepo, goals, clk, validate, logger)
	statistics := service.NewStatisticsService(sessionRepo, streaks, clk, loc, logger)

	return &App{
		Pool:       pool,
		Location:   loc,
		Clock:      clk,
		Logger:     logger,
		Users:      service.NewUserService(userRepo, clk, logger),
		Languages:  service.NewLanguageService(languageRepo, progressRepo, NewUnitOfWork(pool), clk, validate, logger),
		Goals:      goals,
		Sessions:   sessions,
		Statistics: statistics,
		Streaks:    streaks,
		Dashboard:  service.NewDashboardService(goals, sessions, statistics, logger),
		Reminders: service.NewReminderService(
			userRepo,
			sessionRepo,
			streaks,
			clk,
			loc,
			cfg.Reminders.Schedule,
			logger,
		),
	}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

// UnitOfWork runs service work inside one database transaction, handing out
// repositories bound to that transaction.
type UnitOfWork struct {
	tx *postgres.Transactor
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{tx: postgres.NewTransactor(pool)}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, s service.Stores) error) error {
	return u.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, service.Stores{
			Goals:    repository.NewGoalRepository(tx),
			Sessions: repository.NewStudySessionRepository(tx),
			Progress: repository.NewLanguageProgressRepository(tx),
		})
	})
}
