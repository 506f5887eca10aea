package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/intakebot/internal/middleware"
	"github.com/set-night/intakebot/internal/service"
)

const (
	msgWelcome  = "こんにちは。訪問診療のご依頼・ご相談を受け付けます。"
	msgTextOnly = "申し訳ありません。テキストでお送りください。"
)

// HandleText feeds a private text message to the dialogue and sends its replies.
func (h *Handler) HandleText(ctx context.Context, _ *bot.Bot, update *models.Update) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		id = middleware.IdentityFromUpdate(update)
	}
	if id == nil {
		return
	}

	text := update.Message.Text
	if isCommand(text, "/start") || isCommand(text, "/help") {
		h.sender.Send(ctx, id.ChatID, service.Reply{Text: msgWelcome}, service.MenuReply())
		return
	}

	replies := h.dialogue.Handle(ctx, id.UserID, text)
	h.sender.Send(ctx, id.ChatID, replies...)
}

// HandleNonText answers private messages that carry no text, such as stickers.
func (h *Handler) HandleNonText(ctx context.Context, _ *bot.Bot, update *models.Update) {
	id := middleware.IdentityFromUpdate(update)
	if id == nil || update.Message.Text != "" {
		return
	}
	h.sender.Send(ctx, id.ChatID, service.Reply{Text: msgTextOnly})
}

// isCommand matches "/cmd", "/cmd@botname" and "/cmd payload".
func isCommand(text, cmd string) bool {
	if !strings.HasPrefix(text, cmd) {
		return false
	}
	rest := text[len(cmd):]
	return rest == "" || rest[0] == '@' || rest[0] == ' '
}
