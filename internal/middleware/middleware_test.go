package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func privateUpdate(userID int64) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			Text: "hello",
			From: &models.User{ID: userID, FirstName: "Hanako"},
			Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
		},
	}
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(60, 2)
	if !l.Allow(1) || !l.Allow(1) {
		t.Fatal("burst should be allowed")
	}
	if l.Allow(1) {
		t.Error("third immediate message should be limited")
	}
	if !l.Allow(2) {
		t.Error("other chats are independent")
	}
	if l.size() != 2 {
		t.Errorf("limiters = %d, want 2", l.size())
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow(1) {
			t.Fatal("limiter with no rate should allow everything")
		}
	}
	if l.size() != 0 {
		t.Error("disabled limiter should not track chats")
	}
}

func TestRateLimitPassesNonMessages(t *testing.T) {
	called := false
	h := RateLimit(NewLimiter(1, 1))(func(context.Context, *bot.Bot, *models.Update) { called = true })
	h(context.Background(), nil, &models.Update{CallbackQuery: &models.CallbackQuery{}})
	if !called {
		t.Error("non-message updates should pass through")
	}
}

func TestRecoverApologizesToChat(t *testing.T) {
	var chats []int64
	apologize := func(_ context.Context, chatID int64) { chats = append(chats, chatID) }
	h := Recover(apologize)(func(context.Context, *bot.Bot, *models.Update) { panic("boom") })

	h(context.Background(), nil, privateUpdate(31))
	if len(chats) != 1 || chats[0] != 31 {
		t.Errorf("apologized to %v, want [31]", chats)
	}

	h(context.Background(), nil, &models.Update{})
	if len(chats) != 1 {
		t.Errorf("update without a sender should not be answered, got %v", chats)
	}
}

func TestRecoverWithoutPanic(t *testing.T) {
	called := false
	h := Recover(func(context.Context, int64) { t.Error("apology sent without a panic") })(
		func(context.Context, *bot.Bot, *models.Update) { called = true },
	)
	h(context.Background(), nil, privateUpdate(1))
	if !called {
		t.Error("next handler not called")
	}

	Recover(nil)(func(context.Context, *bot.Bot, *models.Update) { panic("boom") })(context.Background(), nil, privateUpdate(2))
}

func TestLoggingCallsNext(t *testing.T) {
	called := false
	h := Logging()(func(context.Context, *bot.Bot, *models.Update) { called = true })
	h(context.Background(), nil, privateUpdate(5))
	if !called {
		t.Error("next handler not called")
	}
}

func TestIdentify(t *testing.T) {
	var got *Identity
	h := Identify()(func(ctx context.Context, _ *bot.Bot, _ *models.Update) { got = GetIdentity(ctx) })

	h(context.Background(), nil, privateUpdate(12345))
	if got == nil || got.UserID != "12345" || got.ChatID != 12345 || got.Name != "Hanako" {
		t.Fatalf("identity = %+v", got)
	}

	got = nil
	group := privateUpdate(7)
	group.Message.Chat = models.Chat{ID: -100, Type: models.ChatTypeGroup}
	h(context.Background(), nil, group)
	if got != nil {
		t.Error("group messages should be dropped")
	}

	h(context.Background(), nil, &models.Update{})
	if got != nil {
		t.Error("updates without a message should be dropped")
	}
}

func TestGetIdentityMissing(t *testing.T) {
	if GetIdentity(context.Background()) != nil {
		t.Error("expected nil identity")
	}
}
