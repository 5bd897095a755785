package models

import "errors"

var (
	// ErrNotFound is returned when a kanji with the requested id does not exist.
	ErrNotFound = errors.New("kanji not found")

	// ErrPersistence is returned when progress could not be written to the store.
	ErrPersistence = errors.New("persistence error")
)
