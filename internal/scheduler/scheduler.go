package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// DueCounter counts kanji that are due for review
type DueCounter interface {
	CountDue(ctx context.Context, now time.Time) (int, error)
}

// Notifier interface for sending notifications
type Notifier interface {
	NotifyDue(ctx context.Context, count int) error
}

// Config holds the reminder settings
type Config struct {
	Interval  time.Duration
	StartHour int // First hour (UTC) when reminders may be sent
	EndHour   int // Last hour (UTC) when reminders may be sent
}

// DefaultConfig returns the default settings: a check every minute, reminders around the clock
func DefaultConfig() Config {
	return Config{
		Interval:  time.Minute,
		StartHour: 0,
		EndHour:   23,
	}
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	counter   DueCounter
	notifier  Notifier
	cfg       Config
	now       func() time.Time
	log       *slog.Logger

	mu           sync.Mutex
	lastNotified int
}

// New creates a new scheduler instance
func New(cfg Config, counter DueCounter, notifier Notifier, log *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		counter:   counter,
		notifier:  notifier,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("component", "scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.cfg.Interval).Do(func() {
		if _, err := s.CheckDue(ctx); err != nil {
			s.log.Error("due review check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.log.Info("reminder scheduler started", "interval", s.cfg.Interval)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// CheckDue counts due kanji and notifies when the count is new.
// It returns the number of due kanji.
func (s *Scheduler) CheckDue(ctx context.Context) (int, error) {
	now := s.now()
	count, err := s.counter.CountDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due kanji: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if count == 0 {
		s.lastNotified = 0
		return 0, nil
	}
	if count == s.lastNotified {
		return count, nil
	}
	if !s.inNotificationHours(now) {
		s.log.Debug("outside notification hours, skipping reminder",
			"hour", now.Hour(), "start", s.cfg.StartHour, "end", s.cfg.EndHour)
		return count, nil
	}

	if err := s.notifier.NotifyDue(ctx, count); err != nil {
		return count, fmt.Errorf("failed to send reminder: %w", err)
	}
	s.lastNotified = count
	s.log.Info("reminder sent", "due", count)
	return count, nil
}

func (s *Scheduler) inNotificationHours(now time.Time) bool {
	h := now.Hour()
	if s.cfg.StartHour <= s.cfg.EndHour {
		return h >= s.cfg.StartHour && h <= s.cfg.EndHour
	}
	// Interval wraps past midnight
	return h >= s.cfg.StartHour || h <= s.cfg.EndHour
}
