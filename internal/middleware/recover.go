package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Apology replies to a chat whose update could not be handled.
type Apology func(ctx context.Context, chatID int64)

// Recover returns middleware that recovers from panics. When the update
// came from a private chat, apologize is called so the user still gets
// an answer.
func Recover(apologize Apology) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				id := IdentityFromUpdate(update)
				attrs := []any{"panic", r, "update_id", update.ID, "stack", string(debug.Stack())}
				if id != nil {
					attrs = append(attrs, "user_id", id.UserID)
				}
				slog.Error("panic recovered in update handler", attrs...)

				if id != nil && apologize != nil {
					apologize(ctx, id.ChatID)
				}
			}()
			next(ctx, b, update)
		}
	}
}
