package quiz

import (
	"context"
	"time"

	"github.com/example/kanjibot/pkg/models"
)

// Clock supplies the current time to the scheduler
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns wall-clock time in UTC
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// Store is the persistence the session reads and writes progress through.
// LoadItem fails with models.ErrNotFound for unknown ids; SaveProgress increments
// the stored review counter and fails with models.ErrPersistence on write failure.
type Store interface {
	LoadItem(ctx context.Context, id int64) (models.Kanji, error)
	SaveProgress(ctx context.Context, id int64, progress models.Progress) error
}
