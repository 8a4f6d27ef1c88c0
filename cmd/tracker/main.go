package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua-tracker/internal/app"
	"github.com/aliskhannn/lingua-tracker/internal/config"
	"github.com/aliskhannn/lingua-tracker/internal/delivery/api"
	"github.com/aliskhannn/lingua-tracker/internal/delivery/telegram"
	"github.com/aliskhannn/lingua-tracker/internal/infra/postgres"
	"github.com/aliskhannn/lingua-tracker/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Language learning progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newBotCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

// setup loads configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := cfg.RequireJWTSecret(); err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			handler := api.NewHandler(api.Services{
				Users:      a.Users,
				Languages:  a.Languages,
				Goals:      a.Goals,
				Sessions:   a.Sessions,
				Statistics: a.Statistics,
				Streaks:    a.Streaks,
				Dashboard:  a.Dashboard,
			}, log)

			router := api.NewRouter(handler, api.RouterConfig{
				JWTSecret:   cfg.Auth.JWTSecret,
				CORSOrigins: cfg.HTTP.CORSOrigins,
			})

			server := api.NewServer(api.ServerConfig{
				Addr:         cfg.HTTP.Addr,
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}, router, log)

			return server.Run(cmd.Context())
		},
	}
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and the streak reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := cfg.RequireTelegramToken(); err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
			if err != nil {
				return fmt.Errorf("create bot: %w", err)
			}
			bot.Debug = cfg.Telegram.Debug

			if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands...)); err != nil {
				log.Warn("failed to set bot commands", zap.Error(err))
			}
			log.Info("authorized on account", zap.String("username", bot.Self.UserName))

			handler := telegram.NewHandler(
				bot,
				log,
				a.Clock,
				a.Users,
				a.Languages,
				a.Sessions,
				a.Goals,
				a.Statistics,
				a.Streaks,
			)
			a.Reminders.SetNotifier(handler)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return handler.Run(ctx)
			})
			if cfg.Reminders.Enabled {
				g.Go(func() error {
					return a.Reminders.Start(ctx)
				})
			}

			return g.Wait()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			dsn, err := cfg.DB.DSN()
			if err != nil {
				return err
			}

			pool, err := postgres.NewPool(cmd.Context(), dsn, postgres.PoolConfig{
				MaxConns:        1,
				MaxConnLifetime: cfg.DB.MaxConnLifetime,
			})
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			if err := postgres.Migrate(cmd.Context(), pool); err != nil {
				return err
			}

			log.Info("database schema is up to date")
			return nil
		},
	}
}
