package quiz

import (
	"strings"
	"unicode"

	"github.com/example/kanjibot/internal/kana"
	"github.com/example/kanjibot/pkg/models"
)

// PromptKind is the fact about a kanji a prompt asks for
type PromptKind int

const (
	// Meaning asks for one of the english meanings
	Meaning PromptKind = iota
	// Reading asks for the on'yomi or kun'yomi in hiragana
	Reading
)

// MeaningSeparator separates accepted alternatives inside a meaning field
const MeaningSeparator = "/"

func (k PromptKind) String() string {
	switch k {
	case Meaning:
		return "meaning"
	case Reading:
		return "reading"
	default:
		return "unknown"
	}
}

// IsCorrect checks a submitted answer against a kanji.
// Comparison ignores case and surrounding whitespace.
func IsCorrect(kind PromptKind, submission string, expected models.Kanji) bool {
	answer := normalize(submission)
	if answer == "" {
		return false
	}

	switch kind {
	case Meaning:
		for _, alt := range strings.Split(expected.Meaning, MeaningSeparator) {
			alt = normalize(alt)
			if alt != "" && alt == answer {
				return true
			}
		}
		return false
	case Reading:
		return answer == normalize(expected.OnReading) || answer == normalize(expected.KunReading)
	default:
		return false
	}
}

// ExpectedAnswer returns the answer shown to the learner after a prompt.
func ExpectedAnswer(kind PromptKind, item models.Kanji) string {
	if kind == Reading {
		return item.Reading()
	}
	return item.Meaning
}

// AssistInput converts romaji typed for a reading prompt into hiragana.
// Conversion only kicks in once the text contains an uppercase letter, so
// lowercase typing is left alone. Meaning answers are returned unchanged.
func AssistInput(kind PromptKind, raw string) string {
	if kind != Reading || raw == "" {
		return raw
	}
	for _, r := range raw {
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return kana.Transliterate(raw)
		}
	}
	return raw
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
