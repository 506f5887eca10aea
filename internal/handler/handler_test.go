package handler

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/intakebot/internal/config"
	"github.com/set-night/intakebot/internal/middleware"
	"github.com/set-night/intakebot/internal/service"
)

type fakeDialogue struct {
	userID string
	text   string
	calls  int
}

func (f *fakeDialogue) Handle(_ context.Context, userID, text string) []service.Reply {
	f.userID, f.text = userID, text
	f.calls++
	return []service.Reply{{Text: "echo:" + text}}
}

type sent struct {
	chatID  int64
	replies []service.Reply
}

type fakeSender struct {
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, chatID int64, replies ...service.Reply) {
	f.sent = append(f.sent, sent{chatID, replies})
}

func newTestHandler() (*Handler, *fakeDialogue, *fakeSender) {
	d := &fakeDialogue{}
	s := &fakeSender{}
	return New(Deps{Dialogue: d, Sender: s}), d, s
}

func textUpdate(text string) *models.Update {
	return &models.Update{Message: &models.Message{
		Text: text,
		From: &models.User{ID: 777},
		Chat: models.Chat{ID: 777, Type: models.ChatTypePrivate},
	}}
}

func TestHandleTextRoutesToDialogue(t *testing.T) {
	h, d, s := newTestHandler()

	h.HandleText(context.Background(), nil, textUpdate("登録する"))

	if d.userID != "777" || d.text != "登録する" {
		t.Errorf("dialogue got %q/%q", d.userID, d.text)
	}
	if len(s.sent) != 1 || s.sent[0].chatID != 777 || s.sent[0].replies[0].Text != "echo:登録する" {
		t.Errorf("sent = %+v", s.sent)
	}
}

func TestHandleTextUsesContextIdentity(t *testing.T) {
	h, d, s := newTestHandler()
	ctx := context.WithValue(context.Background(), middleware.IdentityKey, &middleware.Identity{UserID: "ctx-user", ChatID: 9})

	h.HandleText(ctx, nil, textUpdate("x"))

	if d.userID != "ctx-user" || s.sent[0].chatID != 9 {
		t.Errorf("identity from context ignored: user %q chat %d", d.userID, s.sent[0].chatID)
	}
}

func TestHandleTextStartShowsMenu(t *testing.T) {
	for _, cmd := range []string{"/start", "/start@intake_bot", "/help"} {
		h, d, s := newTestHandler()
		h.HandleText(context.Background(), nil, textUpdate(cmd))

		if d.calls != 0 {
			t.Errorf("%s should not reach the dialogue", cmd)
		}
		if len(s.sent) != 1 || len(s.sent[0].replies) != 2 || len(s.sent[0].replies[1].Choices) == 0 {
			t.Errorf("%s sent = %+v", cmd, s.sent)
		}
	}
}

func TestHandleTextFlowCommandsReachDialogue(t *testing.T) {
	h, d, _ := newTestHandler()
	h.HandleText(context.Background(), nil, textUpdate("/cancel"))
	if d.text != "/cancel" {
		t.Errorf("dialogue text = %q", d.text)
	}
}

func TestHandleTextIgnoresGroups(t *testing.T) {
	h, d, s := newTestHandler()
	u := textUpdate("hello")
	u.Message.Chat.Type = models.ChatTypeSupergroup

	h.HandleText(context.Background(), nil, u)
	if d.calls != 0 || len(s.sent) != 0 {
		t.Error("group message was handled")
	}
}

func TestHandleNonText(t *testing.T) {
	h, _, s := newTestHandler()
	h.HandleNonText(context.Background(), nil, textUpdate(""))
	if len(s.sent) != 1 || s.sent[0].replies[0].Text != msgTextOnly {
		t.Errorf("sent = %+v", s.sent)
	}

	s.sent = nil
	h.HandleNonText(context.Background(), nil, &models.Update{})
	if len(s.sent) != 0 {
		t.Error("update without a message should be ignored")
	}
}

func TestIsCommand(t *testing.T) {
	tests := map[string]bool{
		"/start":         true,
		"/start@bot":     true,
		"/start payload": true,
		"/starting":      false,
		"start":          false,
	}
	for in, want := range tests {
		if got := isCommand(in, "/start"); got != want {
			t.Errorf("isCommand(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestApologizeSendsEscalationMessage(t *testing.T) {
	s := &fakeSender{}
	h := New(Deps{Cfg: &config.Config{EscalationMessage: "お電話ください"}, Sender: s})

	h.Apologize(context.Background(), 55)

	if len(s.sent) != 1 || s.sent[0].chatID != 55 || s.sent[0].replies[0].Text != "お電話ください" {
		t.Errorf("sent = %+v", s.sent)
	}
}
