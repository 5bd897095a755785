package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/example/kanjibot/internal/spaced_repetition"
	"github.com/example/kanjibot/pkg/models"
)

const kanjiTable = "kanji"

var kanjiColumns = []string{
	"id", "kanji", "meaning", "on_reading", "kun_reading",
	"example_word", "example_reading", "example_meaning", "difficulty_level",
	"is_learned", "srs_level", "review_count", "last_reviewed", "next_review",
}

// KanjiRepository handles database operations for kanji and their SRS progress
type KanjiRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewKanjiRepository creates a new repository instance
func NewKanjiRepository(db *sqlx.DB) *KanjiRepository {
	return &KanjiRepository{db: db, sb: statementBuilder(db)}
}

// LoadItem returns a kanji by ID or models.ErrNotFound
func (r *KanjiRepository) LoadItem(ctx context.Context, id int64) (models.Kanji, error) {
	query, args, err := r.sb.Select(kanjiColumns...).From(kanjiTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Kanji{}, fmt.Errorf("failed to build query: %w", err)
	}

	var k models.Kanji
	err = r.db.GetContext(ctx, &k, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Kanji{}, fmt.Errorf("kanji %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Kanji{}, fmt.Errorf("failed to get kanji %d: %w", id, err)
	}
	return k, nil
}

// GetByCharacter returns a kanji by its glyph or models.ErrNotFound
func (r *KanjiRepository) GetByCharacter(ctx context.Context, character string) (models.Kanji, error) {
	query, args, err := r.sb.Select(kanjiColumns...).From(kanjiTable).Where(sq.Eq{"kanji": character}).ToSql()
	if err != nil {
		return models.Kanji{}, fmt.Errorf("failed to build query: %w", err)
	}

	var k models.Kanji
	err = r.db.GetContext(ctx, &k, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Kanji{}, fmt.Errorf("kanji %q: %w", character, models.ErrNotFound)
	}
	if err != nil {
		return models.Kanji{}, fmt.Errorf("failed to get kanji %q: %w", character, err)
	}
	return k, nil
}

// SaveProgress writes the scheduler result for a kanji and bumps its review counter.
// The next review time is only kept for learned kanji.
func (r *KanjiRepository) SaveProgress(ctx context.Context, id int64, p models.Progress) error {
	var nextReview *time.Time
	if p.IsLearned {
		t := p.NextReview.UTC()
		nextReview = &t
	}

	query, args, err := r.sb.Update(kanjiTable).
		Set("srs_level", p.Level).
		Set("is_learned", p.IsLearned).
		Set("next_review", nextReview).
		Set("last_reviewed", p.LastReviewed.UTC()).
		Set("review_count", sq.Expr("review_count + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: save progress for kanji %d: %w", models.ErrPersistence, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: save progress for kanji %d: %w", models.ErrPersistence, id, err)
	}
	if n == 0 {
		return fmt.Errorf("kanji %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// SelectItemsForLearning returns up to limit kanji that were never learned, in insertion order
func (r *KanjiRepository) SelectItemsForLearning(ctx context.Context, limit int) ([]models.Kanji, error) {
	q := r.sb.Select(kanjiColumns...).From(kanjiTable).
		Where(sq.Eq{"is_learned": false}).
		OrderBy("id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.selectKanji(ctx, q)
}

// SelectItemsDueForReview returns learned kanji whose next review is at or before now, oldest first
func (r *KanjiRepository) SelectItemsDueForReview(ctx context.Context, now time.Time) ([]models.Kanji, error) {
	q := r.sb.Select(kanjiColumns...).From(kanjiTable).
		Where(sq.Eq{"is_learned": true}).
		Where(sq.LtOrEq{"next_review": now.UTC()}).
		OrderBy("next_review", "id")
	return r.selectKanji(ctx, q)
}

// GetAll returns all kanji
func (r *KanjiRepository) GetAll(ctx context.Context) ([]models.Kanji, error) {
	return r.selectKanji(ctx, r.sb.Select(kanjiColumns...).From(kanjiTable).OrderBy("id"))
}

// CountDue returns the number of kanji due for review at now
func (r *KanjiRepository) CountDue(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, sq.And{sq.Eq{"is_learned": true}, sq.LtOrEq{"next_review": now.UTC()}})
}

// Count returns the number of kanji
func (r *KanjiRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

// Create inserts a new kanji with fresh progress and sets its ID
func (r *KanjiRepository) Create(ctx context.Context, k *models.Kanji) error {
	return r.create(ctx, r.db, k)
}

// CreateBatch inserts kanji in a single transaction
func (r *KanjiRepository) CreateBatch(ctx context.Context, items []models.Kanji) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range items {
		if err := r.create(ctx, tx, &items[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateContent rewrites the card fields of a kanji, leaving its progress untouched
func (r *KanjiRepository) UpdateContent(ctx context.Context, k models.Kanji) error {
	query, args, err := r.sb.Update(kanjiTable).
		SetMap(map[string]interface{}{
			"meaning":          k.Meaning,
			"on_reading":       k.OnReading,
			"kun_reading":      k.KunReading,
			"example_word":     k.ExampleWord,
			"example_reading":  k.ExampleReading,
			"example_meaning":  k.ExampleMeaning,
			"difficulty_level": k.Difficulty,
			"updated_at":       time.Now().UTC(),
		}).
		Where(sq.Eq{"id": k.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update kanji %d: %w", k.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("kanji %d: %w", k.ID, models.ErrNotFound)
	}
	return nil
}

// ResetAll drops the progress of every kanji
func (r *KanjiRepository) ResetAll(ctx context.Context) error {
	query, args, err := r.sb.Update(kanjiTable).
		Set("is_learned", false).
		Set("srs_level", 0).
		Set("review_count", 0).
		Set("last_reviewed", nil).
		Set("next_review", nil).
		Set("updated_at", time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: reset progress: %w", models.ErrPersistence, err)
	}
	return nil
}

// SetNextReview moves the next review of one learned kanji to at.
// Unlearned kanji have no review time and are reported as not found.
func (r *KanjiRepository) SetNextReview(ctx context.Context, id int64, at time.Time) error {
	query, args, err := r.sb.Update(kanjiTable).
		Set("next_review", at.UTC()).
		Where(sq.Eq{"id": id, "is_learned": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: set next review for kanji %d: %w", models.ErrPersistence, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("kanji %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// Stats returns learning statistics at now
func (r *KanjiRepository) Stats(ctx context.Context, now time.Time) (models.Stats, error) {
	stats := models.Stats{ByLevel: make(map[int]int, spaced_repetition.MaxLevel+1)}
	for level := 0; level <= spaced_repetition.MaxLevel; level++ {
		stats.ByLevel[level] = 0
	}

	var err error
	if stats.Total, err = r.count(ctx, nil); err != nil {
		return models.Stats{}, err
	}
	if stats.Learned, err = r.count(ctx, sq.Eq{"is_learned": true}); err != nil {
		return models.Stats{}, err
	}
	if stats.DueForReview, err = r.CountDue(ctx, now); err != nil {
		return models.Stats{}, err
	}
	stats.New = stats.Total - stats.Learned
	stats.ByLevel[0] = stats.New

	query, args, err := r.sb.Select("srs_level", "COUNT(*) AS cnt").From(kanjiTable).
		Where(sq.Eq{"is_learned": true}).
		GroupBy("srs_level").
		ToSql()
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []struct {
		Level int `db:"srs_level"`
		Count int `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return models.Stats{}, fmt.Errorf("failed to get level distribution: %w", err)
	}
	for _, row := range rows {
		stats.ByLevel[row.Level] = row.Count
		if spaced_repetition.IsMastered(row.Level, true) {
			stats.Mastered += row.Count
		}
	}
	return stats, nil
}

func (r *KanjiRepository) create(ctx context.Context, ext sqlx.ExtContext, k *models.Kanji) error {
	insert := r.sb.Insert(kanjiTable).
		Columns("kanji", "meaning", "on_reading", "kun_reading",
			"example_word", "example_reading", "example_meaning", "difficulty_level").
		Values(k.Character, k.Meaning, k.OnReading, k.KunReading,
			k.ExampleWord, k.ExampleReading, k.ExampleMeaning, k.Difficulty)

	// Для PostgreSQL нет LastInsertId
	if r.db.DriverName() == DriverPostgres {
		query, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if err := ext.QueryRowxContext(ctx, query, args...).Scan(&k.ID); err != nil {
			return fmt.Errorf("failed to create kanji %q: %w", k.Character, err)
		}
	} else {
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		res, err := ext.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to create kanji %q: %w", k.Character, err)
		}
		if k.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}
	}

	k.IsLearned = false
	k.SRSLevel = 0
	k.ReviewCount = 0
	k.LastReviewed = nil
	k.NextReview = nil
	return nil
}

func (r *KanjiRepository) selectKanji(ctx context.Context, q sq.SelectBuilder) ([]models.Kanji, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var items []models.Kanji
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get kanji: %w", err)
	}
	return items, nil
}

func (r *KanjiRepository) count(ctx context.Context, where sq.Sqlizer) (int, error) {
	q := r.sb.Select("COUNT(*)").From(kanjiTable)
	if where != nil {
		q = q.Where(where)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count kanji: %w", err)
	}
	return n, nil
}
