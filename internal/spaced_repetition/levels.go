package spaced_repetition

import (
	"time"
)

const (
	// MinLevel is the lowest level a reviewed kanji can have
	MinLevel = 1
	// MaxLevel is the highest SRS level
	MaxLevel = 8
)

// intervals holds the review delay for levels 1..8; index 0 is unused.
var intervals = [MaxLevel + 1]time.Duration{
	0,
	10 * time.Second,
	30 * time.Second,
	1 * time.Minute,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
	1 * time.Hour,
}

// Result is the new SRS state of a kanji after an answer
type Result struct {
	Level      int
	NextReview time.Time
	IsLearned  bool
}

// Interval returns the review delay for a level.
// Level 0 and out-of-range levels use the level 1 interval.
func Interval(level int) time.Duration {
	if level < MinLevel || level > MaxLevel {
		return intervals[MinLevel]
	}
	return intervals[level]
}

// Advance computes the next level and review time for a kanji.
//
// A correct answer moves a kanji that was never learned to level 1 and marks it
// learned; otherwise the level grows by one up to MaxLevel. An incorrect answer
// lowers the level by one but never below MinLevel, and keeps isLearned as it was.
// Levels outside 0..MaxLevel are clamped into that range first.
// The caller bumps the review counter and sets the last review time to now.
func Advance(level int, isLearned bool, now time.Time, correct bool) Result {
	level = min(max(level, 0), MaxLevel)

	var newLevel int
	newIsLearned := isLearned

	if correct {
		if level == 0 || !isLearned {
			newLevel = MinLevel // Первое изучение
		} else {
			newLevel = min(level+1, MaxLevel)
		}
		newIsLearned = true
	} else {
		newLevel = max(level-1, MinLevel)
	}

	return Result{
		Level:      newLevel,
		NextReview: now.Add(Interval(newLevel)),
		IsLearned:  newIsLearned,
	}
}

// IsMastered determines if a kanji is considered "mastered":
// it is learned and sits on the top level.
func IsMastered(level int, isLearned bool) bool {
	return isLearned && level >= MaxLevel
}
