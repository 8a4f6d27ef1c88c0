package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

func TestSendDueReminders(t *testing.T) {
	env := newTestEnv()
	chat := func(id int64) *int64 { return &id }

	env.store.users["tg:1"] = entities.User{ID: "tg:1", Name: "Ana", TelegramChatID: chat(1)}  // streak alive, nothing today
	env.store.users["tg:2"] = entities.User{ID: "tg:2", Name: "Ben", TelegramChatID: chat(2)}  // already studied today
	env.store.users["tg:3"] = entities.User{ID: "tg:3", Name: "Cleo", TelegramChatID: chat(3)} // no streak
	env.store.users["web"] = entities.User{ID: "web", Name: "Dora"}                            // not on telegram
	env.store.addSession(session("a1", "tg:1", spanish, entities.ActivityReading, 10, daysAgo(1)))
	env.store.addSession(session("a2", "tg:1", spanish, entities.ActivityReading, 10, daysAgo(2)))
	env.store.addSession(session("b1", "tg:2", spanish, entities.ActivityReading, 10, daysAgo(0)))
	env.store.addSession(session("w1", "web", spanish, entities.ActivityReading, 10, daysAgo(1)))

	calc := env.streakCalculator(0)
	cache, err := NewStreakCache(calc, env.clock, DefaultStreakTTL, 16, env.logger)
	require.NoError(t, err)

	svc := NewReminderService(fakeUsers{env.store}, fakeSessions{env.store}, cache, env.clock, nil, "", env.logger)

	_, err = svc.SendDue(context.Background())
	assert.ErrorIs(t, err, ErrNotifierNotSet)

	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	sent, err := svc.SendDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(1), notifier.sent[0].chatID)
	assert.Equal(t, entities.ReminderPayload{UserName: "Ana", CurrentStreak: 2}, notifier.sent[0].payload)
}

func TestEnsureTelegramUser(t *testing.T) {
	env := newTestEnv()
	svc := NewUserService(fakeUsers{env.store}, env.clock, env.logger)

	id, err := svc.EnsureTelegramUser(context.Background(), 42, 4242, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "tg:42", id)
	require.NotNil(t, env.store.users[id].TelegramChatID)
	assert.Equal(t, int64(4242), *env.store.users[id].TelegramChatID)
	assert.Equal(t, testNow, env.store.users[id].CreatedAt)

	require.NoError(t, svc.EnsureUser(context.Background(), "u1", "ana@example.com", "Ana"))
	assert.Equal(t, "ana@example.com", env.store.users["u1"].Email)
}
