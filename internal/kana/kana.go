// Package kana converts romaji typed on a latin keyboard into hiragana
// and classifies japanese script.
package kana

import (
	"strings"
	"unicode/utf8"
)

// Transliterate converts romaji in input to hiragana using greedy longest-match
// over the romaji table: at each position tokens of length 4, 3, 2 and 1 are tried
// in that order. Only ASCII letters are case-folded for matching. Characters that
// start no token are copied byte for byte, invalid UTF-8 included.
func Transliterate(input string) string {
	var out strings.Builder
	out.Grow(len(input) * 2)

	for i := 0; i < len(input); {
		matched := false
		for n := min(maxTokenLen, len(input)-i); n >= 1; n-- {
			if kana, ok := Lookup(input[i : i+n]); ok {
				out.WriteString(kana)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(input[i:])
			out.WriteString(input[i : i+size])
			i += size
		}
	}
	return out.String()
}

// IsHiragana reports whether text is non-empty and made only of hiragana (U+3040-U+309F).
func IsHiragana(text string) bool {
	return allInRange(text, 0x3040, 0x309F)
}

// IsKatakana reports whether text is non-empty and made only of katakana (U+30A0-U+30FF).
func IsKatakana(text string) bool {
	return allInRange(text, 0x30A0, 0x30FF)
}

// IsKanji reports whether text is non-empty and made only of CJK unified ideographs (U+4E00-U+9FAF).
func IsKanji(text string) bool {
	return allInRange(text, 0x4E00, 0x9FAF)
}

func allInRange(text string, lo, hi rune) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < lo || r > hi {
			return false
		}
	}
	return true
}
