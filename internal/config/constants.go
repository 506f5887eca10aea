package config

import "time"

const (
	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Idle session sweep interval, used when SESSION_IDLE_TIMEOUT is set
	SessionSweepInterval = 5 * time.Minute

	// Webhook path served when WEBHOOK_URL is set
	WebhookPath = "/telegram/webhook"

	// HTTP server shutdown grace period
	ShutdownTimeout = 10 * time.Second

	// Rate limit burst per chat
	RateLimitBurst = 5

	// Postgres pool sizing
	DBMaxConns = 10
	DBMinConns = 2
)
