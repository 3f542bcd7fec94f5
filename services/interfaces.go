package services

import "sticker-notes/models"

// NoteRepository defines the interface for note data access.
// Production uses *store.Store.
type NoteRepository interface {
	ListAll() ([]models.SavedNote, error)
	Get(id int64) (models.SavedNote, error)
	Insert(note models.Note) error
	Update(note models.SavedNote, changes ...models.Change) error
	Remove(note models.SavedNote) error
	Clear() error
}
