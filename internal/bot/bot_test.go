package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanjibot/internal/database"
	"github.com/example/kanjibot/internal/quiz"
	"github.com/example/kanjibot/pkg/models"
)

const testChat int64 = 100

var testNow = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

type senderMock struct {
	mu        sync.Mutex
	messages  []tgbotapi.MessageConfig
	requests  int
	err       error
	failChats map[int64]error
}

func (m *senderMock) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return tgbotapi.Message{}, m.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		if err := m.failChats[msg.ChatID]; err != nil {
			return tgbotapi.Message{}, err
		}
		m.messages = append(m.messages, msg)
	}
	return tgbotapi.Message{}, nil
}

func (m *senderMock) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *senderMock) last() tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return tgbotapi.MessageConfig{}
	}
	return m.messages[len(m.messages)-1]
}

type testEnv struct {
	bot     *Bot
	api     *senderMock
	repo    *database.KanjiRepository
	results *database.SessionResultRepository
}

func newTestEnv(t *testing.T, items ...models.Kanji) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, database.DriverSQLite, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewKanjiRepository(db)
	for i := range items {
		require.NoError(t, repo.Create(ctx, &items[i]))
	}
	results := database.NewSessionResultRepository(db)

	api := &senderMock{}
	b := New(api, repo, results, Config{LessonSize: 1, AdminIDs: []int64{1}}, nil)
	b.clock = quiz.ClockFunc(func() time.Time { return testNow })

	return &testEnv{bot: b, api: api, repo: repo, results: results}
}

func sampleKanji() []models.Kanji {
	return []models.Kanji{
		{Character: "一", Meaning: "one/single", OnReading: "いち", KunReading: "ひと", ExampleWord: "一人", ExampleReading: "ひとり", ExampleMeaning: "one person"},
		{Character: "二", Meaning: "two", OnReading: "に", KunReading: "ふた"},
	}
}

func command(chatID int64, cmd string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     cmd,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func commandArgs(chatID int64, cmd, args string) tgbotapi.Update {
	u := command(chatID, cmd)
	u.Message.Text = cmd + " " + args
	return u
}

func text(chatID int64, s string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{Text: s, Chat: &tgbotapi.Chat{ID: chatID}}}
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func TestBot_LearningSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/learn"))
	assert.Contains(t, env.api.last().Text, "一")
	assert.Contains(t, env.api.last().Text, "What does it mean?")

	env.bot.HandleUpdate(ctx, text(testChat, "One"))
	assert.Contains(t, env.api.last().Text, "How is it read?")

	// Romaji in capitals is converted before checking
	env.bot.HandleUpdate(ctx, text(testChat, "IICHI"))
	assert.Contains(t, env.api.last().Text, "Perfect lesson")
	assert.False(t, env.bot.hasSession(testChat))

	k, err := env.repo.GetByCharacter(ctx, "一")
	require.NoError(t, err)
	assert.True(t, k.IsLearned)
	assert.Equal(t, 1, k.SRSLevel)

	history, err := env.results.GetByChatID(ctx, testChat, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "learning", history[0].Mode)
	assert.Equal(t, 2, history[0].CorrectPrompts)
	assert.True(t, history[0].FullySuccessful)
}

func TestBot_WrongAnswerRetryAndSkip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/learn"))
	env.bot.HandleUpdate(ctx, text(testChat, "uno"))

	last := env.api.last()
	assert.Contains(t, last.Text, "Expected: one/single")
	assert.NotNil(t, last.ReplyMarkup, "retry buttons expected")

	env.bot.HandleUpdate(ctx, text(testChat, "one"))
	assert.Contains(t, env.api.last().Text, "Retry")

	env.bot.HandleUpdate(ctx, callback(testChat, callbackRetry))
	assert.Contains(t, env.api.last().Text, "What does it mean?")
	assert.Equal(t, 1, env.api.requests)

	env.bot.HandleUpdate(ctx, text(testChat, "single"))
	env.bot.HandleUpdate(ctx, text(testChat, "さん"))
	env.bot.HandleUpdate(ctx, command(testChat, "/skip"))
	assert.Contains(t, env.api.last().Text, "1/2 correct")
	assert.Contains(t, env.api.last().Text, "Keep practising")

	k, err := env.repo.GetByCharacter(ctx, "一")
	require.NoError(t, err)
	assert.False(t, k.IsLearned)
	assert.Equal(t, 2, k.ReviewCount)
}

func TestBot_EmptyAnswerAndNoSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, text(testChat, "hello"))
	assert.Contains(t, env.api.last().Text, "No study session")

	env.bot.HandleUpdate(ctx, command(testChat, "/skip"))
	assert.Contains(t, env.api.last().Text, "No study session")

	env.bot.HandleUpdate(ctx, command(testChat, "/learn"))
	env.bot.HandleUpdate(ctx, text(testChat, "   "))
	assert.Equal(t, "Please type an answer.", env.api.last().Text)

	env.bot.HandleUpdate(ctx, command(testChat, "/retry"))
	assert.Equal(t, "There is nothing to retry.", env.api.last().Text)
}

func TestBot_ReviewWithNothingDue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/review"))
	assert.Contains(t, env.api.last().Text, "Nothing is due")
	assert.False(t, env.bot.hasSession(testChat))
}

func TestBot_ReviewDueKanji(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	k, err := env.repo.GetByCharacter(ctx, "二")
	require.NoError(t, err)
	require.NoError(t, env.repo.SaveProgress(ctx, k.ID, models.Progress{
		Level: 3, IsLearned: true, NextReview: testNow.Add(-time.Second), LastReviewed: testNow.Add(-time.Minute),
	}))

	env.bot.HandleUpdate(ctx, callback(testChat, callbackReview))
	assert.Contains(t, env.api.last().Text, "二")

	env.bot.HandleUpdate(ctx, text(testChat, "two"))
	env.bot.HandleUpdate(ctx, text(testChat, "ふた"))
	assert.Contains(t, env.api.last().Text, "Perfect review")

	k, err = env.repo.GetByCharacter(ctx, "二")
	require.NoError(t, err)
	assert.Equal(t, 4, k.SRSLevel)
}

func TestBot_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/stats"))
	msg := env.api.last().Text
	assert.Contains(t, msg, "Total: 2")
	assert.Contains(t, msg, "New: 2")
	assert.Contains(t, msg, "Mastered: 0")
	assert.Contains(t, msg, "8 (1 h): 0")
}

func TestBot_ResetIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	k, err := env.repo.GetByCharacter(ctx, "一")
	require.NoError(t, err)
	require.NoError(t, env.repo.SaveProgress(ctx, k.ID, models.Progress{Level: 5, IsLearned: true, NextReview: testNow, LastReviewed: testNow}))

	env.bot.HandleUpdate(ctx, command(testChat, "/reset"))
	assert.Contains(t, env.api.last().Text, "only available for administrators")

	env.bot.HandleUpdate(ctx, command(1, "/reset"))
	assert.Contains(t, env.api.last().Text, "reset")

	k, err = env.repo.GetByCharacter(ctx, "一")
	require.NoError(t, err)
	assert.False(t, k.IsLearned)
	assert.Equal(t, 0, k.SRSLevel)
}

func TestBot_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	k, err := env.repo.GetByCharacter(ctx, "二")
	require.NoError(t, err)
	require.NoError(t, env.repo.SaveProgress(ctx, k.ID, models.Progress{
		Level: 3, IsLearned: true, NextReview: testNow.Add(5 * time.Minute), LastReviewed: testNow,
	}))

	env.bot.HandleUpdate(ctx, command(testChat, "/list"))
	msg := env.api.last().Text
	assert.Contains(t, msg, "Deck (2 kanji)")
	assert.Contains(t, msg, "一  one/single  new")
	assert.Contains(t, msg, "二  two  level 3, review in 5 min")
}

func TestBot_DueSetsReviewTime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	k, err := env.repo.GetByCharacter(ctx, "二")
	require.NoError(t, err)
	require.NoError(t, env.repo.SaveProgress(ctx, k.ID, models.Progress{
		Level: 3, IsLearned: true, NextReview: testNow.Add(time.Hour), LastReviewed: testNow,
	}))

	env.bot.HandleUpdate(ctx, commandArgs(testChat, "/due", "二"))
	assert.Contains(t, env.api.last().Text, "only available for administrators")

	env.bot.HandleUpdate(ctx, command(1, "/due"))
	assert.Contains(t, env.api.last().Text, "Usage")

	env.bot.HandleUpdate(ctx, commandArgs(1, "/due", "水"))
	assert.Contains(t, env.api.last().Text, "not in the deck")

	env.bot.HandleUpdate(ctx, commandArgs(1, "/due", "一"))
	assert.Contains(t, env.api.last().Text, "not learned yet")

	env.bot.HandleUpdate(ctx, commandArgs(1, "/due", "二 soon"))
	assert.Contains(t, env.api.last().Text, "whole number")

	env.bot.HandleUpdate(ctx, commandArgs(1, "/due", "二"))
	assert.Contains(t, env.api.last().Text, "二 is due at 2024-05-10 08:00 UTC")

	due, err := env.repo.SelectItemsDueForReview(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "二", due[0].Character)

	env.bot.HandleUpdate(ctx, commandArgs(1, "/due", "二 30"))
	assert.Contains(t, env.api.last().Text, "08:30")
}

func TestBot_NotifyDue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/start"))
	env.api.messages = nil

	require.NoError(t, env.bot.NotifyDue(ctx, 3))
	require.Len(t, env.api.messages, 2, "admin and subscribed chat")
	assert.Equal(t, int64(1), env.api.messages[0].ChatID)
	assert.Equal(t, testChat, env.api.messages[1].ChatID)
	assert.Contains(t, env.api.messages[1].Text, "3 kanji are due")

	// Chats in the middle of a session are not disturbed
	env.bot.HandleUpdate(ctx, command(testChat, "/learn"))
	env.api.messages = nil
	require.NoError(t, env.bot.NotifyDue(ctx, 1))
	require.Len(t, env.api.messages, 1)
	assert.Equal(t, int64(1), env.api.messages[0].ChatID)

	env.api.err = errors.New("blocked by user")
	assert.ErrorContains(t, env.bot.NotifyDue(ctx, 1), "blocked by user")
}

func TestBot_NotifyDuePartialFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/start"))
	env.api.messages = nil
	env.api.failChats = map[int64]error{1: errors.New("chat not found")}

	// The reminder reached one chat, so it counts as sent
	require.NoError(t, env.bot.NotifyDue(ctx, 2))
	require.Len(t, env.api.messages, 1)
	assert.Equal(t, testChat, env.api.messages[0].ChatID)
}

func TestBot_RunStopsOnClosedChannel(t *testing.T) {
	env := newTestEnv(t, sampleKanji()...)

	updates := make(chan tgbotapi.Update, 1)
	updates <- command(testChat, "/help")
	close(updates)

	require.NoError(t, env.bot.Run(context.Background(), updates))
	assert.Contains(t, env.api.last().Text, "/learn")
}

func TestBot_RunKeepsChatOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, sampleKanji()...)

	env.bot.HandleUpdate(ctx, command(testChat, "/learn"))

	// Answers sent back to back must reach the prompts in the order they were typed
	updates := make(chan tgbotapi.Update, 2)
	updates <- text(testChat, "one")
	updates <- text(testChat, "いち")
	close(updates)

	require.NoError(t, env.bot.Run(ctx, updates))
	assert.Contains(t, env.api.last().Text, "Perfect lesson")

	history, err := env.results.GetByChatID(ctx, testChat, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].CorrectPrompts)
	assert.True(t, history[0].FullySuccessful)

	k, err := env.repo.GetByCharacter(ctx, "一")
	require.NoError(t, err)
	assert.True(t, k.IsLearned)
	assert.Equal(t, 1, k.ReviewCount)
}

func TestUpdateChatID(t *testing.T) {
	id, ok := updateChatID(text(7, "hi"))
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	id, ok = updateChatID(callback(9, callbackStats))
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)

	_, ok = updateChatID(tgbotapi.Update{UpdateID: 1})
	assert.False(t, ok)
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "10 sec", formatInterval(10*time.Second))
	assert.Equal(t, "30 min", formatInterval(30*time.Minute))
	assert.Equal(t, "1 h", formatInterval(time.Hour))
}
