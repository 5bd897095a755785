package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/kanjibot/internal/quiz"
	"github.com/example/kanjibot/internal/spaced_repetition"
	"github.com/example/kanjibot/pkg/models"
)

const (
	callbackLearn  = "learn"
	callbackReview = "review"
	callbackStats  = "stats"
	callbackRetry  = "retry"
	callbackSkip   = "skip"
	callbackHelp   = "help"
)

// MainMenuButtons returns the buttons of the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📖 Learn", CallbackData: callbackLearn}, {Text: "🔁 Review", CallbackData: callbackReview}},
		{{Text: "📊 Stats", CallbackData: callbackStats}, {Text: "❓ Help", CallbackData: callbackHelp}},
	}
}

func retryButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "🔄 Retry", CallbackData: callbackRetry}, {Text: "⏭ Skip", CallbackData: callbackSkip}},
	}
}

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	var err error
	switch message.Command() {
	case "start":
		err = b.handleStart(chatID)
	case "help":
		err = b.handleHelp(chatID)
	case "learn":
		err = b.startSession(ctx, chatID, quiz.ModeLearning)
	case "review":
		err = b.startSession(ctx, chatID, quiz.ModeReview)
	case "stats":
		err = b.handleStats(ctx, chatID)
	case "retry":
		err = b.handleRetry(ctx, chatID)
	case "skip":
		err = b.handleSkip(ctx, chatID)
	case "list":
		err = b.handleList(ctx, chatID)
	case "reset":
		err = b.handleReset(ctx, chatID)
	case "due":
		err = b.handleDue(ctx, chatID, message.CommandArguments())
	default:
		msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see what I can do.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		err = b.sendMessage(msg)
	}
	return err
}

// HandleCallback handles presses on inline buttons
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback == nil || callback.Message == nil || callback.Message.Chat == nil {
		return fmt.Errorf("invalid callback data: required fields are missing")
	}

	// Always send an answer to the callback query to remove the loading state
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Warn("failed to answer callback", "error", err)
	}

	chatID := callback.Message.Chat.ID
	switch callback.Data {
	case callbackLearn:
		return b.startSession(ctx, chatID, quiz.ModeLearning)
	case callbackReview:
		return b.startSession(ctx, chatID, quiz.ModeReview)
	case callbackStats:
		return b.handleStats(ctx, chatID)
	case callbackRetry:
		return b.handleRetry(ctx, chatID)
	case callbackSkip:
		return b.handleSkip(ctx, chatID)
	case callbackHelp:
		return b.handleHelp(chatID)
	default:
		return b.sendText(chatID, "⚠️ Unknown action")
	}
}

func (b *Bot) handleStart(chatID int64) error {
	b.subscribe(chatID)

	text := "👋 Welcome to the kanji trainer!\n\n" +
		"Every kanji is asked twice: first its meaning in English, then its reading in hiragana.\n" +
		"Correct answers move a kanji up one of eight levels, mistakes move it down. " +
		"Higher levels come back for review later.\n\n" +
		"I will remind you when kanji are due for review."

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "📖 Commands\n\n" +
		"/learn - study new kanji\n" +
		"/review - review kanji that are due\n" +
		"/stats - show your progress\n" +
		"/list - show every kanji with its level\n" +
		"/retry - try the last prompt again\n" +
		"/skip - give up on the last prompt\n\n" +
		"Meanings: type any of the accepted English meanings, case does not matter.\n" +
		"Readings: type hiragana, or romaji in CAPITALS. " +
		"A vowel on its own is typed twice (II → い, KYOUU → きょう) and ん is NN."

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	stats, err := b.repo.Stats(ctx, b.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Progress\n\nTotal: %d\nLearned: %d\nMastered: %d\nNew: %d\nDue for review: %d\n\nBy level:\n",
		stats.Total, stats.Learned, stats.Mastered, stats.New, stats.DueForReview)
	for level := spaced_repetition.MinLevel; level <= spaced_repetition.MaxLevel; level++ {
		fmt.Fprintf(&sb, "%d (%s): %d\n", level, formatInterval(spaced_repetition.Interval(level)), stats.ByLevel[level])
	}

	if b.results != nil {
		if n, err := b.results.CountSuccessful(ctx, chatID); err == nil {
			fmt.Fprintf(&sb, "\nPerfect sessions: %d", n)
		} else {
			b.log.Warn("failed to count sessions", "chat_id", chatID, "error", err)
		}
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) handleReset(ctx context.Context, chatID int64) error {
	if !b.isAdmin(chatID) {
		return b.sendText(chatID, "This command is only available for administrators.")
	}
	if err := b.repo.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	b.dropAllSessions()
	b.log.Info("progress reset", "chat_id", chatID)
	return b.sendText(chatID, "🗑 All progress was reset.")
}

// maxListed caps /list so the reply stays under the Telegram message limit
const maxListed = 100

func (b *Bot) handleList(ctx context.Context, chatID int64) error {
	all, err := b.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list kanji: %w", err)
	}
	if len(all) == 0 {
		return b.sendText(chatID, "The deck is empty.")
	}

	now := b.clock.Now()
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗂 Deck (%d kanji)\n\n", len(all))
	for i, k := range all {
		if i == maxListed {
			fmt.Fprintf(&sb, "...and %d more", len(all)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "%s  %s  ", k.Character, k.Meaning)
		switch {
		case !k.IsLearned:
			sb.WriteString("new")
		case spaced_repetition.IsMastered(k.SRSLevel, k.IsLearned):
			sb.WriteString("mastered")
		default:
			fmt.Fprintf(&sb, "level %d", k.SRSLevel)
		}
		if k.IsLearned && k.NextReview != nil {
			if wait := k.NextReview.Sub(now); wait > 0 {
				fmt.Fprintf(&sb, ", review in %s", formatInterval(wait))
			} else {
				sb.WriteString(", due")
			}
		}
		sb.WriteString("\n")
	}
	return b.sendText(chatID, sb.String())
}

// handleDue sets the review time of a learned kanji: /due <kanji> [minutes from now]
func (b *Bot) handleDue(ctx context.Context, chatID int64, args string) error {
	if !b.isAdmin(chatID) {
		return b.sendText(chatID, "This command is only available for administrators.")
	}

	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return b.sendText(chatID, "Usage: /due <kanji> [minutes from now]")
	}
	minutes := 0
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return b.sendText(chatID, "Minutes must be a whole number, 0 or more.")
		}
		minutes = n
	}

	k, err := b.repo.GetByCharacter(ctx, fields[0])
	if errors.Is(err, models.ErrNotFound) {
		return b.sendText(chatID, fmt.Sprintf("%s is not in the deck.", fields[0]))
	}
	if err != nil {
		return fmt.Errorf("failed to get kanji: %w", err)
	}
	if !k.IsLearned {
		return b.sendText(chatID, fmt.Sprintf("%s is not learned yet, so it has no review time.", k.Character))
	}

	at := b.clock.Now().Add(time.Duration(minutes) * time.Minute)
	if err := b.repo.SetNextReview(ctx, k.ID, at); err != nil {
		return fmt.Errorf("failed to set review time: %w", err)
	}
	b.log.Info("review time changed", "chat_id", chatID, "kanji", k.Character, "next_review", at)
	return b.sendText(chatID, fmt.Sprintf("⏱ %s is due at %s UTC.", k.Character, at.UTC().Format("2006-01-02 15:04")))
}

// startSession replaces the active session of a chat with a new one
func (b *Bot) startSession(ctx context.Context, chatID int64, mode quiz.Mode) error {
	b.subscribe(chatID)

	var (
		items []models.Kanji
		err   error
	)
	if mode == quiz.ModeReview {
		items, err = b.repo.SelectItemsDueForReview(ctx, b.clock.Now())
	} else {
		items, err = b.repo.SelectItemsForLearning(ctx, b.cfg.LessonSize)
	}
	if err != nil {
		return fmt.Errorf("failed to select kanji: %w", err)
	}

	s, err := quiz.NewSession(mode, items, b.repo, b.clock, b.log.With("chat_id", chatID))
	if errors.Is(err, quiz.ErrNoItems) {
		text := "🎉 Nothing is due for review right now."
		if mode == quiz.ModeLearning {
			text = "🎉 You have learned every kanji in the deck."
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		return b.sendMessage(msg)
	}
	if err != nil {
		return err
	}

	cs := b.chat(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.session = s
	b.log.Info("session started", "chat_id", chatID, "session_id", s.ID(), "mode", mode, "kanji", len(items))

	if err := b.sendText(chatID, fmt.Sprintf("Starting %s of %d kanji.", modeTitle(mode), len(items))); err != nil {
		return err
	}
	return b.sendPrompt(chatID, s)
}

// handleAnswer submits free text as the answer to the open prompt
func (b *Bot) handleAnswer(ctx context.Context, chatID int64, text string) error {
	cs := b.chat(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	s := cs.session
	if s == nil {
		msg := tgbotapi.NewMessage(chatID, "No study session is running. Choose what to do:")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		return b.sendMessage(msg)
	}

	p, _, ok := s.Current()
	if !ok {
		return b.finishSession(ctx, chatID, cs)
	}

	out, err := s.Submit(ctx, quiz.AssistInput(p.Kind, text))
	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer):
		return b.sendText(chatID, "Please type an answer.")
	case errors.Is(err, quiz.ErrAwaitingRetry):
		msg := tgbotapi.NewMessage(chatID, "Press Retry to answer again or Skip to move on.")
		msg.ReplyMarkup = createKeyboard(retryButtons())
		return b.sendMessage(msg)
	case errors.Is(err, quiz.ErrSessionComplete):
		return b.finishSession(ctx, chatID, cs)
	case err != nil:
		// The answer was evaluated, only the progress write failed
		b.log.Error("failed to record answer", "chat_id", chatID, "session_id", s.ID(), "error", err)
		if sendErr := b.sendText(chatID, "⚠️ Your answer was checked but progress could not be saved."); sendErr != nil {
			return sendErr
		}
	}

	if err := b.sendOutcome(chatID, out); err != nil {
		return err
	}
	if !out.Correct {
		return nil
	}
	if out.Complete {
		return b.finishSession(ctx, chatID, cs)
	}
	return b.sendPrompt(chatID, s)
}

func (b *Bot) handleRetry(ctx context.Context, chatID int64) error {
	cs := b.chat(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.session == nil {
		return b.sendText(chatID, "No study session is running.")
	}
	if err := cs.session.Retry(); err != nil {
		return b.sendText(chatID, "There is nothing to retry.")
	}
	return b.sendPrompt(chatID, cs.session)
}

func (b *Bot) handleSkip(ctx context.Context, chatID int64) error {
	cs := b.chat(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()

	s := cs.session
	if s == nil {
		return b.sendText(chatID, "No study session is running.")
	}
	if err := s.Skip(); err != nil {
		return b.sendText(chatID, "Answer the prompt first, skipping is possible after a mistake.")
	}
	if s.State() == quiz.StateComplete {
		return b.finishSession(ctx, chatID, cs)
	}
	return b.sendPrompt(chatID, s)
}

// finishSession stores the summary of a completed session and reports it. Caller holds cs.mu.
func (b *Bot) finishSession(ctx context.Context, chatID int64, cs *chatSession) error {
	s := cs.session
	cs.session = nil
	sum := s.Summary()

	if b.results != nil {
		result := &models.SessionResult{
			SessionID:       sum.SessionID.String(),
			ChatID:          chatID,
			Mode:            string(sum.Mode),
			TotalPrompts:    sum.TotalPrompts,
			CorrectPrompts:  sum.CorrectPrompts,
			FullySuccessful: sum.FullySuccessful,
			StartedAt:       sum.StartedAt,
			FinishedAt:      sum.FinishedAt,
		}
		if err := b.results.Create(ctx, result); err != nil {
			b.log.Error("failed to save session result", "chat_id", chatID, "session_id", sum.SessionID, "error", err)
		}
	}
	b.log.Info("session finished", "chat_id", chatID, "session_id", sum.SessionID,
		"correct", sum.CorrectPrompts, "total", sum.TotalPrompts)

	var sb strings.Builder
	if sum.FullySuccessful {
		fmt.Fprintf(&sb, "🏁 Perfect %s! %d/%d correct.", modeTitle(sum.Mode), sum.CorrectPrompts, sum.TotalPrompts)
	} else {
		fmt.Fprintf(&sb, "🏁 The %s is over: %d/%d correct.", modeTitle(sum.Mode), sum.CorrectPrompts, sum.TotalPrompts)
	}
	if len(sum.Unresolved) > 0 {
		sb.WriteString("\n\nKeep practising:\n")
		for _, k := range sum.Unresolved {
			fmt.Fprintf(&sb, "%s  %s  (%s)\n", k.Character, k.Meaning, k.Reading())
		}
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) sendPrompt(chatID int64, s *quiz.Session) error {
	p, item, ok := s.Current()
	if !ok {
		return nil
	}
	idx, _ := s.Position()
	total := len(s.Prompts()) / 2

	var question string
	if p.Kind == quiz.Meaning {
		question = "What does it mean?"
	} else {
		question = "How is it read? (hiragana or CAPITAL romaji)"
	}
	return b.sendText(chatID, fmt.Sprintf("Kanji %d/%d\n\n%s\n\n%s", idx/2+1, total, item.Character, question))
}

func (b *Bot) sendOutcome(chatID int64, out quiz.Outcome) error {
	if !out.Correct {
		text := fmt.Sprintf("❌ Not quite. Expected: %s", out.Expected)
		if out.Demoted {
			text += fmt.Sprintf("\n%s is now at level %d.", out.Item.Character, out.Item.SRSLevel)
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = createKeyboard(retryButtons())
		return b.sendMessage(msg)
	}

	var sb strings.Builder
	sb.WriteString("✅ Correct!")
	if out.Prompt.Kind == quiz.Reading && out.Item.ExampleWord != "" {
		fmt.Fprintf(&sb, "\nExample: %s (%s) %s", out.Item.ExampleWord, out.Item.ExampleReading, out.Item.ExampleMeaning)
	}
	if out.Leveled {
		fmt.Fprintf(&sb, "\n⬆️ %s reached level %d, next review in %s.",
			out.Item.Character, out.Item.SRSLevel, formatInterval(spaced_repetition.Interval(out.Item.SRSLevel)))
	}
	return b.sendText(chatID, sb.String())
}

func modeTitle(mode quiz.Mode) string {
	if mode == quiz.ModeReview {
		return "review"
	}
	return "lesson"
}

func formatInterval(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d sec", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d min", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d h", int(d.Hours()))
	}
}
