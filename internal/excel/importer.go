package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/kanjibot/internal/kana"
	"github.com/example/kanjibot/pkg/models"
)

// KanjiStore is the part of the kanji repository used by the importer
type KanjiStore interface {
	GetByCharacter(ctx context.Context, character string) (models.Kanji, error)
	Create(ctx context.Context, k *models.Kanji) error
	UpdateContent(ctx context.Context, k models.Kanji) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath             string // Path to the Excel or CSV file
	KanjiColumn          string // Column with the kanji glyph
	MeaningColumn        string // Column with the meanings, alternatives separated by "/"
	OnReadingColumn      string
	KunReadingColumn     string
	ExampleWordColumn    string
	ExampleReadingColumn string
	ExampleMeaningColumn string
	DifficultyColumn     string
	SheetName            string // Name of the sheet to import
	StartRow             int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		KanjiColumn:          "A",
		MeaningColumn:        "B",
		OnReadingColumn:      "C",
		KunReadingColumn:     "D",
		ExampleWordColumn:    "E",
		ExampleReadingColumn: "F",
		ExampleMeaningColumn: "G",
		DifficultyColumn:     "H",
		SheetName:            "Sheet1",
		StartRow:             2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Errors         []string
}

var errEmptyRow = errors.New("empty row")

// ImportKanji imports kanji from an Excel or CSV file.
// Known kanji get their card content updated, their progress is left alone.
func ImportKanji(ctx context.Context, config ImportConfig, store KanjiStore) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		k, err := parseRow(row, config)
		if errors.Is(err, errEmptyRow) {
			continue
		}
		result.TotalProcessed++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}

		if err := upsert(ctx, store, k, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow extracts a kanji card from a row
func parseRow(row []string, config ImportConfig) (models.Kanji, error) {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	k := models.Kanji{
		Character:      cell(config.KanjiColumn),
		Meaning:        cleanMeaning(cell(config.MeaningColumn)),
		OnReading:      normalizeReading(cell(config.OnReadingColumn)),
		KunReading:     normalizeReading(cell(config.KunReadingColumn)),
		ExampleWord:    cell(config.ExampleWordColumn),
		ExampleReading: normalizeReading(cell(config.ExampleReadingColumn)),
		ExampleMeaning: cell(config.ExampleMeaningColumn),
		Difficulty:     parseIntOrDefault(cell(config.DifficultyColumn), 1, 5, 1),
	}

	switch {
	case k.Character == "" && k.Meaning == "" && k.OnReading == "" && k.KunReading == "":
		return k, errEmptyRow
	case k.Character == "":
		return k, fmt.Errorf("kanji cannot be empty")
	case !kana.IsKanji(k.Character):
		return k, fmt.Errorf("%q is not a kanji", k.Character)
	case k.Meaning == "":
		return k, fmt.Errorf("meaning cannot be empty")
	case k.OnReading == "" && k.KunReading == "":
		return k, fmt.Errorf("at least one reading is required")
	}
	for _, reading := range []string{k.OnReading, k.KunReading} {
		if err := validateReading(reading); err != nil {
			return k, err
		}
	}
	return k, nil
}

// validateReading accepts an empty reading or one written entirely in hiragana
func validateReading(reading string) error {
	switch {
	case reading == "" || kana.IsHiragana(reading):
		return nil
	case kana.IsKatakana(reading):
		return fmt.Errorf("reading %q is katakana, write it in hiragana", reading)
	default:
		return fmt.Errorf("reading %q is neither hiragana nor romaji", reading)
	}
}

func upsert(ctx context.Context, store KanjiStore, k models.Kanji, result *ImportResult) error {
	existing, err := store.GetByCharacter(ctx, k.Character)
	switch {
	case err == nil:
		k.ID = existing.ID
		if err := store.UpdateContent(ctx, k); err != nil {
			return fmt.Errorf("failed to update kanji: %w", err)
		}
		result.Updated++
	case errors.Is(err, models.ErrNotFound):
		if err := store.Create(ctx, &k); err != nil {
			return fmt.Errorf("failed to create kanji: %w", err)
		}
		result.Created++
	default:
		return fmt.Errorf("failed to look up kanji: %w", err)
	}
	return nil
}

// cleanMeaning trims every alternative of a "/" separated meaning list
func cleanMeaning(s string) string {
	parts := strings.Split(s, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// normalizeReading converts romaji readings to hiragana
func normalizeReading(s string) string {
	if s == "" || kana.IsHiragana(s) {
		return s
	}
	return kana.Transliterate(s)
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

// Helper function to parse integer within a range
func parseIntInRange(s string, min, max int) (int, error) {
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return min, err
	}
	if val < min {
		return min, nil
	}
	if val > max {
		return max, nil
	}
	return val, nil
}

// Helper function to parse integer with default value
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	if val, err := parseIntInRange(s, min, max); err == nil {
		return val
	}
	return defaultVal
}
