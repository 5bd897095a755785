package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/kanjibot/internal/spaced_repetition"
	"github.com/example/kanjibot/pkg/models"
	"github.com/google/uuid"
)

// Mode tells where the kanji of a session came from
type Mode string

const (
	// ModeLearning studies kanji that were never learned
	ModeLearning Mode = "learning"
	// ModeReview studies learned kanji that are due
	ModeReview Mode = "review"
)

// State is the position of a session in its answer cycle
type State int

const (
	// StateAwaitingAnswer waits for an answer to the current prompt
	StateAwaitingAnswer State = iota
	// StateAwaitingRetry follows an incorrect answer until Retry or Skip
	StateAwaitingRetry
	// StateComplete is reached after the last prompt is resolved
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateAwaitingRetry:
		return "awaiting_retry"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrNoItems is returned when a session is started without kanji
	ErrNoItems = errors.New("no kanji to study")
	// ErrEmptyAnswer is returned for a blank submission; the prompt stays open
	ErrEmptyAnswer = errors.New("empty answer")
	// ErrAwaitingRetry is returned when an answer is submitted before Retry
	ErrAwaitingRetry = errors.New("previous answer was incorrect, retry or skip first")
	// ErrNotAwaitingRetry is returned by Retry and Skip when no answer was rejected
	ErrNotAwaitingRetry = errors.New("no incorrect answer to retry")
	// ErrSessionComplete is returned when the session has no prompts left
	ErrSessionComplete = errors.New("session is complete")
)

// Prompt is one question of a session
type Prompt struct {
	ItemIndex int
	Kind      PromptKind
}

// Outcome describes what happened to a submitted answer
type Outcome struct {
	Prompt Prompt
	// Item is the kanji with its progress after the answer was recorded.
	Item     models.Kanji
	Correct  bool
	Expected string
	// Leveled is set when both prompts of the kanji are now correct and its level went up.
	Leveled bool
	// Demoted is set when an incorrect answer was applied to the kanji's level (floored at 1).
	Demoted bool
	// Missing is set when the kanji vanished from the store and its progress was not updated.
	Missing  bool
	Complete bool
}

// Summary is the report of a session
type Summary struct {
	SessionID       uuid.UUID
	Mode            Mode
	TotalPrompts    int
	CorrectPrompts  int
	FullySuccessful bool
	Unresolved      []models.Kanji
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Session drives the meaning and reading prompts for a batch of kanji and
// pushes every evaluated answer through the SRS scheduler into the store.
// A Session is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	mode    Mode
	items   []models.Kanji
	prompts []Prompt
	results []bool
	cursor  int
	state   State
	leveled map[int64]struct{}

	store Store
	clock Clock
	log   *slog.Logger

	startedAt  time.Time
	finishedAt time.Time
}

// NewSession creates a session over items, two prompts per kanji in the given order.
func NewSession(mode Mode, items []models.Kanji, store Store, clock Clock, log *slog.Logger) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = slog.Default()
	}

	prompts := make([]Prompt, 0, len(items)*2)
	for i := range items {
		prompts = append(prompts, Prompt{ItemIndex: i, Kind: Meaning}, Prompt{ItemIndex: i, Kind: Reading})
	}

	id := uuid.New()
	return &Session{
		id:        id,
		mode:      mode,
		items:     append([]models.Kanji(nil), items...),
		prompts:   prompts,
		results:   make([]bool, len(prompts)),
		state:     StateAwaitingAnswer,
		leveled:   make(map[int64]struct{}, len(items)),
		store:     store,
		clock:     clock,
		log:       log.With("component", "quiz", "session_id", id.String(), "mode", string(mode)),
		startedAt: clock.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Position returns the index of the current prompt and the number of prompts.
func (s *Session) Position() (int, int) { return s.cursor, len(s.prompts) }

// Prompts returns a copy of the prompt sequence.
func (s *Session) Prompts() []Prompt {
	return append([]Prompt(nil), s.prompts...)
}

// Results returns a copy of the per-prompt results.
func (s *Session) Results() []bool {
	return append([]bool(nil), s.results...)
}

// Current returns the open prompt and its kanji; ok is false once the session is complete.
func (s *Session) Current() (Prompt, models.Kanji, bool) {
	if s.state == StateComplete {
		return Prompt{}, models.Kanji{}, false
	}
	p := s.prompts[s.cursor]
	return p, s.items[p.ItemIndex], true
}

// Submit evaluates an answer to the current prompt.
//
// A correct answer resolves the prompt and moves to the next one; when both
// prompts of the kanji are correct its level is raised once per session.
// An incorrect answer lowers the kanji's level right away and leaves the prompt
// waiting for Retry or Skip. A kanji missing from the store is reported through
// Outcome.Missing and the session goes on; store write failures are returned as is.
func (s *Session) Submit(ctx context.Context, answer string) (Outcome, error) {
	switch s.state {
	case StateComplete:
		return Outcome{}, ErrSessionComplete
	case StateAwaitingRetry:
		return Outcome{}, ErrAwaitingRetry
	}
	if strings.TrimSpace(answer) == "" {
		return Outcome{}, ErrEmptyAnswer
	}

	p := s.prompts[s.cursor]
	item := s.items[p.ItemIndex]
	out := Outcome{
		Prompt:   p,
		Item:     item,
		Correct:  IsCorrect(p.Kind, answer, item),
		Expected: ExpectedAnswer(p.Kind, item),
	}

	var err error
	if out.Correct {
		s.results[s.cursor] = true
		s.advanceCursor()
		if s.bothCorrect(p.ItemIndex) {
			if _, done := s.leveled[item.ID]; !done {
				out.Leveled, out.Missing, err = s.record(ctx, p.ItemIndex, true)
				if err == nil {
					s.leveled[item.ID] = struct{}{}
				}
			}
		}
	} else {
		s.state = StateAwaitingRetry
		out.Demoted, out.Missing, err = s.record(ctx, p.ItemIndex, false)
	}

	out.Item = s.items[p.ItemIndex]
	out.Complete = s.state == StateComplete
	return out, err
}

// Retry reopens the prompt after an incorrect answer.
func (s *Session) Retry() error {
	if s.state != StateAwaitingRetry {
		return ErrNotAwaitingRetry
	}
	s.state = StateAwaitingAnswer
	return nil
}

// Skip gives up on the prompt after an incorrect answer, leaving its result false.
func (s *Session) Skip() error {
	if s.state != StateAwaitingRetry {
		return ErrNotAwaitingRetry
	}
	s.advanceCursor()
	return nil
}

// Summary reports the results so far; FullySuccessful needs every prompt correct.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID:    s.id,
		Mode:         s.mode,
		TotalPrompts: len(s.prompts),
		StartedAt:    s.startedAt,
		FinishedAt:   s.finishedAt,
	}
	for _, ok := range s.results {
		if ok {
			sum.CorrectPrompts++
		}
	}
	sum.FullySuccessful = s.state == StateComplete && sum.CorrectPrompts == sum.TotalPrompts

	for i, item := range s.items {
		if !s.bothCorrect(i) {
			sum.Unresolved = append(sum.Unresolved, item)
		}
	}
	return sum
}

func (s *Session) advanceCursor() {
	s.cursor++
	if s.cursor >= len(s.prompts) {
		s.state = StateComplete
		s.finishedAt = s.clock.Now()
		return
	}
	s.state = StateAwaitingAnswer
}

func (s *Session) bothCorrect(itemIndex int) bool {
	return s.results[itemIndex*2] && s.results[itemIndex*2+1]
}

// record runs the scheduler for one kanji against its stored state and saves the result.
func (s *Session) record(ctx context.Context, itemIndex int, correct bool) (applied, missing bool, err error) {
	id := s.items[itemIndex].ID

	current, err := s.store.LoadItem(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		s.log.Warn("kanji disappeared from store, skipping progress update", "kanji_id", id)
		return false, true, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("load kanji %d: %w", id, err)
	}

	now := s.clock.Now()
	res := spaced_repetition.Advance(current.SRSLevel, current.IsLearned, now, correct)
	progress := models.Progress{
		Level:        res.Level,
		IsLearned:    res.IsLearned,
		NextReview:   res.NextReview,
		LastReviewed: now,
	}

	err = s.store.SaveProgress(ctx, id, progress)
	if errors.Is(err, models.ErrNotFound) {
		s.log.Warn("kanji disappeared from store, skipping progress update", "kanji_id", id)
		return false, true, nil
	}
	if err != nil {
		return false, false, err
	}

	item := &s.items[itemIndex]
	item.SRSLevel = res.Level
	item.IsLearned = res.IsLearned
	item.ReviewCount = current.ReviewCount + 1
	item.LastReviewed = &progress.LastReviewed
	item.NextReview = nil
	if res.IsLearned {
		item.NextReview = &progress.NextReview
	}

	s.log.Debug("kanji progress updated",
		"kanji_id", id,
		"correct", correct,
		"level", res.Level,
		"next_review", res.NextReview,
	)
	return true, false, nil
}
