package bot

import (
	"time"
)

// Config represents the configuration for the bot
type Config struct {
	// Number of new kanji per learning session
	LessonSize int
	// Chats allowed to run admin commands
	AdminIDs []int64
	// Long polling timeout in seconds
	PollTimeout int
	// Upper bound for handling a single update
	HandleTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() Config {
	return Config{
		LessonSize:    5,
		PollTimeout:   60,
		HandleTimeout: 30 * time.Second,
	}
}
