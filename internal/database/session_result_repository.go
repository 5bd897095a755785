package database

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/example/kanjibot/pkg/models"
)

const sessionResultsTable = "session_results"

// SessionResultRepository handles database operations for finished study sessions
type SessionResultRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewSessionResultRepository creates a new repository instance
func NewSessionResultRepository(db *sqlx.DB) *SessionResultRepository {
	return &SessionResultRepository{db: db, sb: statementBuilder(db)}
}

// Create inserts a new session result
func (r *SessionResultRepository) Create(ctx context.Context, result *models.SessionResult) error {
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}

	insert := r.sb.Insert(sessionResultsTable).
		Columns("session_id", "chat_id", "mode", "total_prompts", "correct_prompts",
			"fully_successful", "started_at", "finished_at").
		Values(result.SessionID, result.ChatID, result.Mode, result.TotalPrompts, result.CorrectPrompts,
			result.FullySuccessful, result.StartedAt.UTC(), result.FinishedAt.UTC())

	if r.db.DriverName() == DriverPostgres {
		query, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&result.ID); err != nil {
			return fmt.Errorf("failed to create session result: %w", err)
		}
		return nil
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create session result: %w", err)
	}
	if result.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return nil
}

// GetByChatID returns the latest session results of a chat, newest first
func (r *SessionResultRepository) GetByChatID(ctx context.Context, chatID int64, limit int) ([]models.SessionResult, error) {
	q := r.sb.Select("id", "session_id", "chat_id", "mode", "total_prompts", "correct_prompts",
		"fully_successful", "started_at", "finished_at").
		From(sessionResultsTable).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("finished_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var results []models.SessionResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get session results: %w", err)
	}
	return results, nil
}

// CountSuccessful returns how many sessions of a chat ended with every prompt correct
func (r *SessionResultRepository) CountSuccessful(ctx context.Context, chatID int64) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(sessionResultsTable).
		Where(sq.Eq{"chat_id": chatID, "fully_successful": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count session results: %w", err)
	}
	return n, nil
}
