package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/kanjibot/pkg/models"
)

type memoryStore struct {
	byChar map[string]models.Kanji
	nextID int64
}

func newMemoryStore(items ...models.Kanji) *memoryStore {
	s := &memoryStore{byChar: make(map[string]models.Kanji)}
	for _, k := range items {
		s.nextID++
		k.ID = s.nextID
		s.byChar[k.Character] = k
	}
	return s
}

func (s *memoryStore) GetByCharacter(_ context.Context, character string) (models.Kanji, error) {
	k, ok := s.byChar[character]
	if !ok {
		return models.Kanji{}, models.ErrNotFound
	}
	return k, nil
}

func (s *memoryStore) Create(_ context.Context, k *models.Kanji) error {
	s.nextID++
	k.ID = s.nextID
	s.byChar[k.Character] = *k
	return nil
}

func (s *memoryStore) UpdateContent(_ context.Context, k models.Kanji) error {
	old, ok := s.byChar[k.Character]
	if !ok {
		return models.ErrNotFound
	}
	k.SRSLevel = old.SRSLevel
	k.IsLearned = old.IsLearned
	s.byChar[k.Character] = k
	return nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportKanji_CSV(t *testing.T) {
	t.Parallel()
	store := newMemoryStore(models.Kanji{Character: "一", Meaning: "one", OnReading: "いち", SRSLevel: 4, IsLearned: true})

	path := writeCSV(t, `kanji,meaning,on,kun,word,word reading,word meaning,difficulty
一,one / single,いち,ひと,一人,ひとり,one person,1
山,mountain,SANN,YAMA,山道,yamamichi,mountain road,2
,orphan,a,b,,,,
川,,せん,かわ,,,,
空,sky,,,,,,
石,stone,seki,ishi,,,,
ka,latin,か,,,,,
日,sun,ニチ,ひ,,,,
,,,,,,,
`)
	cfg := DefaultImportConfig()
	cfg.FilePath = path

	res, err := ImportKanji(context.Background(), cfg, store)
	require.NoError(t, err)

	assert.Equal(t, 8, res.TotalProcessed)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Errors, 6)
	assert.Contains(t, res.Errors[0], "Row 4")
	assert.Contains(t, res.Errors[0], "kanji cannot be empty")
	assert.Contains(t, res.Errors[1], "meaning cannot be empty")
	assert.Contains(t, res.Errors[2], "at least one reading")
	// A bare I has no kana of its own, so "ishi" stays partly latin
	assert.Contains(t, res.Errors[3], "neither hiragana nor romaji")
	assert.Contains(t, res.Errors[4], "is not a kanji")
	assert.Contains(t, res.Errors[5], "katakana")

	one := store.byChar["一"]
	assert.Equal(t, "one/single", one.Meaning)
	assert.Equal(t, "ひと", one.KunReading)
	assert.Equal(t, 4, one.SRSLevel, "progress must survive an update")
	assert.True(t, one.IsLearned)

	yama := store.byChar["山"]
	assert.Equal(t, "さん", yama.OnReading)
	assert.Equal(t, "やま", yama.KunReading)
	assert.Equal(t, "やまみち", yama.ExampleReading)
	assert.Equal(t, 2, yama.Difficulty)
}

func TestImportKanji_Excel(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "deck.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"kanji", "meaning", "on", "kun"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"水", "water", "すい", "みず", "水曜日", "すいようび", "Wednesday", 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"火", "fire", "か", "ひ", "", "", "", 9}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := newMemoryStore()
	cfg := DefaultImportConfig()
	cfg.FilePath = path

	res, err := ImportKanji(context.Background(), cfg, store)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Errors)

	assert.Equal(t, "Wednesday", store.byChar["水"].ExampleMeaning)
	assert.Equal(t, 5, store.byChar["火"].Difficulty, "difficulty is clamped")
}

func TestImportKanji_MissingFile(t *testing.T) {
	t.Parallel()
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := ImportKanji(context.Background(), cfg, newMemoryStore())
	assert.Error(t, err)
}

type failingStore struct{ memoryStore }

func (s *failingStore) GetByCharacter(context.Context, string) (models.Kanji, error) {
	return models.Kanji{}, errors.New("connection reset")
}

func TestImportKanji_StoreErrorsAreReportedPerRow(t *testing.T) {
	t.Parallel()
	cfg := DefaultImportConfig()
	cfg.FilePath = writeCSV(t, "kanji,meaning,on,kun\n木,tree,もく,き\n")

	res, err := ImportKanji(context.Background(), cfg, &failingStore{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "connection reset")
}

func TestColumnToIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 7, columnToIndex("h"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex("1"))
}

func TestParseIntOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, parseIntOrDefault("3", 1, 5, 1))
	assert.Equal(t, 5, parseIntOrDefault("12", 1, 5, 1))
	assert.Equal(t, 1, parseIntOrDefault("", 1, 5, 1))
	assert.Equal(t, 1, parseIntOrDefault("hard", 1, 5, 1))
}
