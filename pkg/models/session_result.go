package models

import "time"

// SessionResult records the outcome of a finished study session
type SessionResult struct {
	ID              int64     `json:"id" db:"id"`
	SessionID       string    `json:"session_id" db:"session_id"`
	ChatID          int64     `json:"chat_id" db:"chat_id"`
	Mode            string    `json:"mode" db:"mode"` // "learning" or "review"
	TotalPrompts    int       `json:"total_prompts" db:"total_prompts"`
	CorrectPrompts  int       `json:"correct_prompts" db:"correct_prompts"`
	FullySuccessful bool      `json:"fully_successful" db:"fully_successful"`
	StartedAt       time.Time `json:"started_at" db:"started_at"`
	FinishedAt      time.Time `json:"finished_at" db:"finished_at"`
}
