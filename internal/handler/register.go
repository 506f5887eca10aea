package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers the message handlers on the bot instance.
// Every text, commands included, goes through HandleText so the
// dialogue sees flow commands such as /cancel.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.HandleText)
}
