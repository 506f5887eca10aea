package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/set-night/intakebot/internal/config"
	"github.com/set-night/intakebot/internal/service"
)

// Dialogue turns one inbound text into the replies to send.
type Dialogue interface {
	Handle(ctx context.Context, userID, text string) []service.Reply
}

// ReplySender delivers replies to a chat.
type ReplySender interface {
	Send(ctx context.Context, chatID int64, replies ...service.Reply)
}

// Handler holds all dependencies needed by message handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	dialogue Dialogue
	sender   ReplySender
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Dialogue Dialogue
	Sender   ReplySender
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		dialogue: deps.Dialogue,
		sender:   deps.Sender,
	}
}

// Apologize sends the escalation message to chatID.
func (h *Handler) Apologize(ctx context.Context, chatID int64) {
	h.sender.Send(ctx, chatID, service.Reply{Text: h.cfg.EscalationMessage})
}
