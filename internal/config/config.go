package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Study    StudyConfig
	Reminder ReminderConfig
	Log      LogConfig
}

// TelegramConfig holds bot credentials and access control
type TelegramConfig struct {
	Token    string  `env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	AdminIDs []int64 `env:"BOT_ADMIN_IDS" env-separator:","`
	Debug    bool    `env:"TELEGRAM_DEBUG" env-default:"false"`
}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `env:"DATABASE_DSN" env-default:"data/kanji.db"`
}

// StudyConfig controls deck loading and lesson size
type StudyConfig struct {
	LessonSize int    `env:"STUDY_LESSON_SIZE" env-default:"5"`
	SeedN5     bool   `env:"SEED_N5" env-default:"true"`
	ImportPath string `env:"IMPORT_PATH"`
}

// ReminderConfig controls due review reminders
type ReminderConfig struct {
	Interval  time.Duration `env:"REMINDER_INTERVAL" env-default:"1m"`
	StartHour int           `env:"NOTIFICATION_START_HOUR" env-default:"0"`
	EndHour   int           `env:"NOTIFICATION_END_HOUR" env-default:"23"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads an optional .env file, then the environment.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	path := os.Getenv("ENV_FILE")
	explicitPath := path != ""
	if !explicitPath {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil && (explicitPath || !errors.Is(err, os.ErrNotExist)) {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges that tags cannot express
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is empty"))
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is empty"))
	}
	if c.Study.LessonSize <= 0 {
		errs = append(errs, fmt.Errorf("STUDY_LESSON_SIZE must be positive, got %d", c.Study.LessonSize))
	}
	if c.Reminder.Interval < time.Second {
		errs = append(errs, fmt.Errorf("REMINDER_INTERVAL must be at least 1s, got %s", c.Reminder.Interval))
	}
	if !validHour(c.Reminder.StartHour) || !validHour(c.Reminder.EndHour) {
		errs = append(errs, errors.New("notification hours must be within 0..23"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func validHour(h int) bool { return h >= 0 && h <= 23 }
