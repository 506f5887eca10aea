package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	intakebot "github.com/set-night/intakebot"
	"github.com/set-night/intakebot/internal/catalog"
	"github.com/set-night/intakebot/internal/config"
	"github.com/set-night/intakebot/internal/domain"
	"github.com/set-night/intakebot/internal/handler"
	"github.com/set-night/intakebot/internal/metrics"
	"github.com/set-night/intakebot/internal/middleware"
	"github.com/set-night/intakebot/internal/repository"
	"github.com/set-night/intakebot/internal/server"
	"github.com/set-night/intakebot/internal/service"
	"github.com/set-night/intakebot/internal/sheets"
	"github.com/set-night/intakebot/internal/telegram"
)

func main() {
	// Setup structured logging; the level is adjusted once config is loaded
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.SlogLevel())

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load questionnaires
	cat, err := loadCatalog(cfg)
	if err != nil {
		if catalog.IsLoadError(err) {
			slog.Error("invalid question catalog", "dir", cfg.QuestionsDir, "error", err)
		} else {
			slog.Error("failed to open question catalogs", "error", err)
		}
		os.Exit(1)
	}
	slog.Info("question catalogs loaded", "register", len(cat.Register), "consult", len(cat.Consult))

	// Connect storage
	storage, ready, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	// Sessions and metrics
	store := service.NewMemoryStore()
	m := metrics.New(prometheus.DefaultRegisterer, store.Len)

	if cfg.SessionIdleTimeout > 0 {
		service.StartEvictor(ctx, store, cfg.SessionIdleTimeout, config.SessionSweepInterval, func(string) {
			m.SessionEnded(metrics.ReasonIdleEvicted)
		})
	}

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(func(ctx context.Context, chatID int64) {
				if h != nil {
					h.Apologize(ctx, chatID)
				}
			}),
			middleware.Logging(),
			middleware.RateLimit(middleware.NewLimiter(cfg.RateLimitPerMinute, config.RateLimitBurst)),
			middleware.Identify(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleNonText(ctx, b, update)
		}),
	}
	if cfg.WebhookSecret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	dialogue := service.NewDialogue(service.DialogueDeps{
		Catalog:           cat,
		Store:             store,
		Members:           storage,
		Records:           storage,
		Notifier:          telegram.NewTelegramLogger(b, cfg),
		Metrics:           m,
		MaxConfirmRetries: cfg.MaxConfirmRetries,
		EscalationMessage: cfg.EscalationMessage,
	})

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Dialogue: dialogue,
		Sender:   telegram.NewSender(b),
	})
	h.Register()

	routes := server.Deps{Gatherer: prometheus.DefaultGatherer, Ready: ready}
	if cfg.UseWebhook() {
		routes.Webhook = b.WebhookHandler()
	}

	srvDone := superviseServer(func() error {
		return server.Run(ctx, cfg.Port, server.NewRouter(routes))
	}, stop)

	// Start bot
	if err := startBot(ctx, b, cfg); err != nil {
		slog.Error("failed to start bot", "error", err)
		stop()
	}

	<-srvDone

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}

// superviseServer runs serve in the background and cancels the bot via stop
// when serve fails. The returned channel yields serve's result.
func superviseServer(serve func() error, stop func()) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := serve()
		if err != nil {
			slog.Error("http server failed", "error", err)
			stop()
		}
		done <- err
	}()
	return done
}

// startBot runs webhook or long-polling mode and blocks until ctx is done.
func startBot(ctx context.Context, b *bot.Bot, cfg *config.Config) error {
	if cfg.UseWebhook() {
		ok, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
			URL:                cfg.WebhookURL + config.WebhookPath,
			SecretToken:        cfg.WebhookSecret,
			DropPendingUpdates: cfg.DropPendingUpdates,
		})
		if err != nil {
			return fmt.Errorf("set webhook: %w", err)
		}
		if !ok {
			return errors.New("set webhook: rejected")
		}
		slog.Info("starting bot", "mode", "webhook", "url", cfg.WebhookURL+config.WebhookPath)
		b.StartWebhook(ctx)
		return nil
	}

	if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{
		DropPendingUpdates: cfg.DropPendingUpdates,
	}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	slog.Info("starting bot", "mode", "polling")
	b.Start(ctx)
	return nil
}

// loadCatalog reads QUESTIONS_DIR when set, else the embedded defaults.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var fsys fs.FS
	if cfg.QuestionsDir != "" {
		fsys = os.DirFS(cfg.QuestionsDir)
	} else {
		sub, err := fs.Sub(intakebot.QuestionsFS, "questions")
		if err != nil {
			return nil, fmt.Errorf("open embedded questions: %w", err)
		}
		fsys = sub
	}
	return catalog.LoadAll(fsys, cfg.RegisterQuestionsFile, cfg.ConsultQuestionsFile)
}

// openStorage connects the configured backend.
func openStorage(ctx context.Context, cfg *config.Config) (domain.Storage, func(context.Context) error, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}

		migrationsFS, err := fs.Sub(intakebot.MigrationsFS, "migrations")
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("load embedded migrations: %w", err)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		s := repository.NewStore(pool)
		return s, s.Ping, pool.Close, nil

	case config.BackendSheets:
		s, err := sheets.Open(ctx, cfg.SpreadsheetID, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, nil, func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.StorageBackend)
}
