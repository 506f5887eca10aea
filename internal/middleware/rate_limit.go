package middleware

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

const (
	rateLimitedText = "⏳ 送信が多すぎます。少し時間をおいてからお試しください。"

	// maxLimiters triggers pruning of idle per-chat limiters.
	maxLimiters = 10000
)

// Limiter holds one token bucket per chat.
type Limiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLimiter allows perMinute messages per chat with the given burst.
// A non-positive perMinute disables limiting.
func NewLimiter(perMinute, burst int) *Limiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	return &Limiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether chatID may send another message now.
func (l *Limiter) Allow(chatID int64) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[chatID]
	if !ok {
		if len(l.limiters) >= maxLimiters {
			l.prune()
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[chatID] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

// prune drops limiters whose bucket has refilled. Caller holds mu.
func (l *Limiter) prune() {
	for id, lim := range l.limiters {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.limiters, id)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimit returns middleware that drops messages over the per-chat limit.
func RateLimit(l *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !l.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID)
				if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   rateLimitedText,
				}); err != nil {
					slog.Error("failed to send rate limit notice", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
