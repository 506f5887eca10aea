package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/intakebot/internal/config"
	"github.com/set-night/intakebot/internal/domain"
)

// TelegramLogger forwards dialogue outcomes to forum topics of an operator chat.
// It implements domain.Notifier and is silent when no chat is configured.
type TelegramLogger struct {
	api MessageAPI
	cfg *config.Config
	now func() time.Time
}

func NewTelegramLogger(api MessageAPI, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{api: api, cfg: cfg, now: time.Now}
}

var _ domain.Notifier = (*TelegramLogger)(nil)

type LogType string

const (
	LogTypeError        LogType = "error"
	LogTypeRegistration LogType = "registration"
	LogTypeRecord       LogType = "record"
)

const logTimeout = 10 * time.Second

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.topicID(logType)
	if topicID == 0 {
		return
	}

	if parts := SplitMessage(message, config.MaxTelegramMessageLen); len(parts) > 1 {
		message = parts[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
	defer cancel()

	_, err := l.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) NotifyRegistration(userID string, m domain.Member) {
	msg := fmt.Sprintf("👤 新規登録\n\nID: %s\n事業所名: %s\n役職: %s\n氏名: %s",
		userID, m.Office, m.Role, m.Name)
	l.Log(LogTypeRegistration, msg)
}

func (l *TelegramLogger) NotifyRecord(userID, title string) {
	msg := fmt.Sprintf("📝 相談受付\n\nID: %s\nシート名: %s\n時刻: %s",
		userID, title, l.now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeRecord, msg)
}

func (l *TelegramLogger) NotifyEscalation(userID, reason string, err error) {
	msg := fmt.Sprintf("❌ エスカレーション\n\nID: %s\n理由: %s", userID, reason)
	if err != nil {
		msg += "\nエラー: " + err.Error()
	}
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) topicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeRegistration:
		return l.cfg.LogTopicRegistration
	case LogTypeRecord:
		return l.cfg.LogTopicRecord
	default:
		return 0
	}
}
