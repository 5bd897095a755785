package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/kanjibot/internal/quiz"
	"github.com/example/kanjibot/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// sender is the part of tgbotapi.BotAPI used by the bot
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// kanjiRepository provides kanji selection and progress for study sessions
type kanjiRepository interface {
	quiz.Store
	SelectItemsForLearning(ctx context.Context, limit int) ([]models.Kanji, error)
	SelectItemsDueForReview(ctx context.Context, now time.Time) ([]models.Kanji, error)
	GetAll(ctx context.Context) ([]models.Kanji, error)
	GetByCharacter(ctx context.Context, character string) (models.Kanji, error)
	SetNextReview(ctx context.Context, id int64, at time.Time) error
	Stats(ctx context.Context, now time.Time) (models.Stats, error)
	ResetAll(ctx context.Context) error
}

// resultRepository stores finished sessions
type resultRepository interface {
	Create(ctx context.Context, result *models.SessionResult) error
	CountSuccessful(ctx context.Context, chatID int64) (int, error)
}

// chatSession is the active study session of one chat
type chatSession struct {
	mu      sync.Mutex
	session *quiz.Session
}

// Bot represents the Telegram bot application
type Bot struct {
	api     sender
	repo    kanjiRepository
	results resultRepository
	cfg     Config
	clock   quiz.Clock
	log     *slog.Logger

	mu          sync.Mutex
	sessions    map[int64]*chatSession
	subscribers map[int64]struct{}
	admins      map[int64]bool

	wg sync.WaitGroup
}

// New creates a new bot instance
func New(api sender, repo kanjiRepository, results resultRepository, cfg Config, log *slog.Logger) *Bot {
	def := DefaultConfig()
	if cfg.LessonSize <= 0 {
		cfg.LessonSize = def.LessonSize
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = def.PollTimeout
	}
	if cfg.HandleTimeout <= 0 {
		cfg.HandleTimeout = def.HandleTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	b := &Bot{
		api:         api,
		repo:        repo,
		results:     results,
		cfg:         cfg,
		clock:       quiz.SystemClock,
		log:         log.With("component", "bot"),
		sessions:    make(map[int64]*chatSession),
		subscribers: make(map[int64]struct{}),
		admins:      make(map[int64]bool),
	}
	for _, id := range cfg.AdminIDs {
		b.admins[id] = true
		b.subscribers[id] = struct{}{}
	}
	return b
}

// UpdateConfig returns the long polling configuration for GetUpdatesChan
func (b *Bot) UpdateConfig() tgbotapi.UpdateConfig {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	return u
}

// chatQueueSize is how many updates of one chat may wait for their turn
const chatQueueSize = 16

// Run handles updates until ctx is done or the channel is closed.
// Updates of one chat are handled one at a time in arrival order; different
// chats are served by their own goroutines. Run waits for them before returning.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	queues := make(map[int64]chan tgbotapi.Update)
	defer func() {
		for _, q := range queues {
			close(q)
		}
		b.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			chatID, ok := updateChatID(update)
			if !ok {
				continue
			}

			q, found := queues[chatID]
			if !found {
				q = make(chan tgbotapi.Update, chatQueueSize)
				queues[chatID] = q
				b.wg.Add(1)
				go b.serveChat(ctx, q)
			}
			select {
			case q <- update:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// serveChat handles the updates of one chat sequentially
func (b *Bot) serveChat(ctx context.Context, q <-chan tgbotapi.Update) {
	defer b.wg.Done()
	for update := range q {
		hctx, cancel := context.WithTimeout(ctx, b.cfg.HandleTimeout)
		b.HandleUpdate(hctx, update)
		cancel()
	}
}

// updateChatID returns the chat an update belongs to
func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

// HandleUpdate handles incoming updates from Telegram
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		if update.Message.IsCommand() {
			err = b.HandleCommand(ctx, update.Message)
		} else {
			err = b.handleAnswer(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		b.log.Error("failed to handle update", "update_id", update.UpdateID, "error", err)
	}
}

// NotifyDue implements scheduler.Notifier by messaging every subscribed chat.
// Failed chats are logged; an error is returned only when no chat got the reminder,
// so the scheduler repeats it without messaging the delivered chats twice.
func (b *Bot) NotifyDue(ctx context.Context, count int) error {
	var (
		errs      []error
		delivered int
	)
	for _, chatID := range b.subscriberIDs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if b.hasSession(chatID) {
			continue
		}

		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏰ %d %s due for review.", count, pluralKanji(count)))
		msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "🔁 Review now", CallbackData: callbackReview}}})
		if err := b.sendMessage(msg); err != nil {
			b.log.Warn("failed to send reminder", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
			continue
		}
		delivered++
	}
	if delivered > 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (b *Bot) isAdmin(chatID int64) bool {
	return b.admins[chatID]
}

func (b *Bot) subscribe(chatID int64) {
	b.mu.Lock()
	b.subscribers[chatID] = struct{}{}
	b.mu.Unlock()
}

func (b *Bot) subscriberIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]int64, 0, len(b.subscribers))
	for id := range b.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// chat returns the session holder of a chat, creating an empty one if needed
func (b *Bot) chat(chatID int64) *chatSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	cs, ok := b.sessions[chatID]
	if !ok {
		cs = &chatSession{}
		b.sessions[chatID] = cs
	}
	return cs
}

func (b *Bot) hasSession(chatID int64) bool {
	b.mu.Lock()
	cs, ok := b.sessions[chatID]
	b.mu.Unlock()
	if !ok {
		return false
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.session != nil
}

func (b *Bot) dropAllSessions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = make(map[int64]*chatSession)
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func pluralKanji(n int) string {
	if n == 1 {
		return "kanji is"
	}
	return "kanji are"
}
