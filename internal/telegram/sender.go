package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/intakebot/internal/config"
	"github.com/set-night/intakebot/internal/service"
)

// MessageAPI is the part of *bot.Bot used for outbound messages.
type MessageAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Sender delivers dialogue replies to a chat.
type Sender struct {
	api MessageAPI
}

func NewSender(api MessageAPI) *Sender {
	return &Sender{api: api}
}

// Send delivers replies in order. Long texts are split; the reply's
// choices are attached to its last part and earlier parts remove any
// keyboard. Delivery errors are logged and the remaining replies are
// still attempted.
func (s *Sender) Send(ctx context.Context, chatID int64, replies ...service.Reply) {
	for _, r := range replies {
		parts := SplitMessage(r.Text, config.MaxTelegramMessageLen)
		for i, part := range parts {
			params := &bot.SendMessageParams{
				ChatID:      chatID,
				Text:        part,
				ReplyMarkup: RemoveKeyboard(),
			}
			if i == len(parts)-1 {
				params.ReplyMarkup = markup(r.Choices)
			}

			if _, err := s.api.SendMessage(ctx, params); err != nil {
				slog.Error("failed to send reply", "error", err, "chat_id", chatID)
			}
		}
	}
}

func markup(choices []string) models.ReplyMarkup {
	if kb := ReplyKeyboard(choices); kb != nil {
		return kb
	}
	return RemoveKeyboard()
}
