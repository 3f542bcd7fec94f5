package setup

import (
	"log/slog"

	"sticker-notes/app"
	"sticker-notes/config"
	"sticker-notes/store"
)

// InitStore builds the notes store from configuration and opens it
func InitStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	notesStore := store.New(store.Config{
		Path:        cfg.DBPath,
		BusyTimeout: cfg.BusyTimeout,
	}, logger)

	if err := notesStore.Open(); err != nil {
		return nil, err
	}

	logger.Info("notes store opened", "path", cfg.DBPath)
	return notesStore, nil
}

// InitApp initializes the application with all dependencies
func InitApp(notesStore *store.Store, cfg *config.Config, logger *slog.Logger) *app.App {
	application := app.New(notesStore, cfg.MaxImageBytes, logger)
	logger.Info("application initialized with dependency injection")
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(notesStore *store.Store, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if notesStore != nil {
		if err := notesStore.Close(); err != nil {
			logger.Error("failed to close notes store", "error", err)
			return
		}
		logger.Info("notes store closed")
	}
}
