package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/set-night/intakebot/internal/domain"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

type Config struct {
	// Core
	BotToken       string `env:"BOT_TOKEN,required,notEmpty"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`

	// Storage: Postgres
	DatabaseURL string `env:"DATABASE_URL"`

	// Storage: Google Sheets
	SpreadsheetID         string `env:"SPREADSHEET_ID"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`

	// Questionnaires; empty dir means the embedded defaults
	QuestionsDir          string `env:"QUESTIONS_DIR"`
	RegisterQuestionsFile string `env:"REGISTER_QUESTIONS_FILE" envDefault:"register.json"`
	ConsultQuestionsFile  string `env:"CONSULT_QUESTIONS_FILE" envDefault:"consult.json"`

	// Dialogue
	MaxConfirmRetries  int           `env:"MAX_CONFIRM_RETRIES" envDefault:"3"`
	EscalationMessage  string        `env:"ESCALATION_MESSAGE" envDefault:"大変申し訳御座いませんが、070-1689-2637まで、お電話ください。"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"0s"`

	// Server
	Port          int    `env:"PORT" envDefault:"3000"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
	RateLimitPerMinute int  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	// Logging
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
	LogTelegramChatID    int64  `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError        int    `env:"LOG_TOPIC_ERROR"`
	LogTopicRegistration int    `env:"LOG_TOPIC_REGISTRATION"`
	LogTopicRecord       int    `env:"LOG_TOPIC_RECORD"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads configuration from the environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks backend-specific requirements.
func (c *Config) Validate() error {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the sheets backend")
		}
		if c.GoogleCredentialsFile == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required for the sheets backend")
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownBackend, c.StorageBackend)
	}
	if c.MaxConfirmRetries < 1 {
		return fmt.Errorf("MAX_CONFIRM_RETRIES must be >= 1")
	}
	if c.EscalationMessage == "" {
		return fmt.Errorf("ESCALATION_MESSAGE cannot be empty")
	}
	if c.SessionIdleTimeout < 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT cannot be negative")
	}
	return nil
}

// UseWebhook reports whether updates arrive by webhook instead of long polling.
func (c *Config) UseWebhook() bool {
	return c.WebhookURL != ""
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
