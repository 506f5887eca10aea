package middleware

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type ctxKey string

const IdentityKey ctxKey = "identity"

// Identity names the dialogue owner of an update.
type Identity struct {
	UserID string
	ChatID int64
	Name   string
}

// GetIdentity extracts the identity from context.
func GetIdentity(ctx context.Context) *Identity {
	id, ok := ctx.Value(IdentityKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// IdentityFromUpdate returns the sender of a private text message, or nil.
func IdentityFromUpdate(update *models.Update) *Identity {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat.Type != models.ChatTypePrivate {
		return nil
	}
	return &Identity{
		UserID: strconv.FormatInt(msg.From.ID, 10),
		ChatID: msg.Chat.ID,
		Name:   msg.From.FirstName,
	}
}

// Identify returns middleware that stores the sender identity in context.
// Updates without one, such as group chats, are dropped.
func Identify() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			id := IdentityFromUpdate(update)
			if id == nil {
				return
			}
			next(context.WithValue(ctx, IdentityKey, id), b, update)
		}
	}
}
