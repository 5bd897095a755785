package models

// Stats summarises learning progress over the whole kanji set
type Stats struct {
	Total        int         `json:"total"`
	Learned      int         `json:"learned"`
	New          int         `json:"new"`
	DueForReview int         `json:"due_for_review"`
	Mastered     int         `json:"mastered"` // Learned kanji on the top level
	ByLevel      map[int]int `json:"by_level"` // Level 0 counts unlearned kanji
}
