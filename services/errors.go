package services

import "errors"

// Common service-level errors
var (
	// Note errors
	ErrNoteNotFound  = errors.New("note not found")
	ErrImageTooLarge = errors.New("image is too large")
	ErrStoreClosed   = errors.New("notes store is not available")
)
