package store

import (
	"errors"

	"sticker-notes/database"
)

var (
	// ErrNotOpen is returned by every note operation on a closed store.
	ErrNotOpen = errors.New("notes store is not open")

	// ErrNotFound covers both unknown ids and notes that were never saved.
	ErrNotFound = errors.New("note not found")

	// ErrDecode means a stored row could not be read back as a note.
	ErrDecode = database.ErrDecode
)
