package models

import "time"

// Kanji represents one kanji card to be learned
type Kanji struct {
	ID             int64      `json:"id" db:"id"`
	Character      string     `json:"kanji" db:"kanji"`
	Meaning        string     `json:"meaning" db:"meaning"`         // Alternatives separated by "/"
	OnReading      string     `json:"on_reading" db:"on_reading"`   // On'yomi in hiragana
	KunReading     string     `json:"kun_reading" db:"kun_reading"` // Kun'yomi in hiragana
	ExampleWord    string     `json:"example_word" db:"example_word"`
	ExampleReading string     `json:"example_reading" db:"example_reading"`
	ExampleMeaning string     `json:"example_meaning" db:"example_meaning"`
	Difficulty     int        `json:"difficulty" db:"difficulty_level"` // 1-5 scale of difficulty
	IsLearned      bool       `json:"is_learned" db:"is_learned"`
	SRSLevel       int        `json:"srs_level" db:"srs_level"` // 0 = never learned, 1-8 otherwise
	ReviewCount    int        `json:"review_count" db:"review_count"`
	LastReviewed   *time.Time `json:"last_reviewed" db:"last_reviewed"`
	NextReview     *time.Time `json:"next_review" db:"next_review"`
}

// Reading returns the reading shown as the expected answer: on'yomi, or kun'yomi when on'yomi is empty.
func (k Kanji) Reading() string {
	if k.OnReading != "" {
		return k.OnReading
	}
	return k.KunReading
}

// Progress is the SRS state written back after an evaluated answer
type Progress struct {
	Level        int
	IsLearned    bool
	NextReview   time.Time
	LastReviewed time.Time
}
