package app

import (
	"log/slog"

	"sticker-notes/services"
	"sticker-notes/store"
	"sticker-notes/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store       *store.Store
	NoteService *services.NoteService
	Validator   *validator.Validator
	Logger      *slog.Logger
}

// New creates a new App instance with all dependencies
func New(notesStore *store.Store, maxImageBytes int, logger *slog.Logger) *App {
	return &App{
		Store:       notesStore,
		NoteService: services.NewNoteService(notesStore, maxImageBytes),
		Validator:   validator.New(),
		Logger:      logger,
	}
}
