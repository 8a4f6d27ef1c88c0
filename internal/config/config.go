package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`       // current application environment (local, dev, production)
	LogLevel  string    `mapstructure:"log_level"` // overrides the default level of the environment
	App       App       `mapstructure:"app"`
	HTTP      HTTP      `mapstructure:"http"`
	DB        DB        `mapstructure:"database"`
	Auth      Auth      `mapstructure:"-"`
	Telegram  Telegram  `mapstructure:"-"`
	Streak    Streak    `mapstructure:"streak"`
	Reminders Reminders `mapstructure:"reminders"`
}

// App holds domain-wide settings.
type App struct {
	Timezone string `mapstructure:"timezone"` // location used for calendar-day boundaries
}

// HTTP configures the REST API server.
type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Auth holds the secret used to verify bearer tokens.
type Auth struct {
	JWTSecret string
}

// Telegram holds bot credentials.
type Telegram struct {
	APIToken string
	Debug    bool
}

// Streak configures the streak calculator and its cache.
type Streak struct {
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int           `mapstructure:"cache_size"`
	MaxDays   int           `mapstructure:"max_days"`
}

// Reminders configures the daily streak reminder job.
type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // standard five-field cron spec
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", fmt.Errorf("DATABASE_URL: %w", ErrMissingEnvironmentVariables)
	}
	return db.URL, nil
}

// RequireJWTSecret fails when the API is started without a signing secret.
func (c *Config) RequireJWTSecret() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET: %w", ErrMissingEnvironmentVariables)
	}
	return nil
}

// RequireTelegramToken fails when the bot is started without a token.
func (c *Config) RequireTelegramToken() error {
	if c.Telegram.APIToken == "" {
		return fmt.Errorf("TELEGRAM_API_TOKEN: %w", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from an optional .env file, config files and
// environment variables. Only DATABASE_URL is required here; the secrets of
// each surface are checked by the command that needs them.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("streak.cache_ttl", "1h")
	v.SetDefault("streak.cache_size", 10000)
	v.SetDefault("streak.max_days", 365)
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 19 * * *")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_debug", "TELEGRAM_DEBUG")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.Telegram.Debug = v.GetBool("telegram_debug")

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL: %w", ErrMissingEnvironmentVariables)
	}

	return &cfg, nil
}
