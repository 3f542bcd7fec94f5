// Package store is the notes repository the UI talks to. It owns one lazily
// opened SQLite connection and maps database outcomes to the errors in
// errors.go.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sticker-notes/database"
	"sticker-notes/models"
)

// DefaultBusyTimeout bounds how long a statement waits on a locked database.
const DefaultBusyTimeout = time.Second

type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// Store is safe for concurrent use. Open, Close and Destroy take the write
// lock; note operations hold the read lock for the whole statement so the
// connection cannot be closed underneath them.
type Store struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu   sync.RWMutex
	db   *database.DB
	repo *database.Repository
}

type Option func(*Store)

// WithClock replaces time.Now for timestamp refreshes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a closed store. Call Open before using it.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Store {
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = DefaultBusyTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		cfg:    cfg,
		logger: logger.With("component", "notes_store"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.cfg.Path
}

// Open connects to the database file, creating it and the notes table when
// missing. Opening an already open store does nothing.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := database.New(s.cfg.Path, s.cfg.BusyTimeout)
	if err != nil {
		s.logger.Warn("connection to database cannot be opened", "path", s.cfg.Path, "error", err)
		return err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		s.logger.Warn("cannot open or create notes table", "path", s.cfg.Path, "error", err)
		return err
	}

	repo := database.NewRepository(db)
	repo.OnUnknownSticker(func(id int64, raw string) {
		s.logger.Info("unknown sticker format, treated as none", "note_id", id, "sticker", raw)
	})

	s.db = db
	s.repo = repo
	s.logger.Debug("notes store opened", "path", s.cfg.Path)
	return nil
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Close releases the connection and keeps the file. Closing a closed store
// does nothing.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.repo = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.logger.Debug("notes store closed", "path", s.cfg.Path)
	return nil
}

// Destroy closes the store and deletes the database file. The store can be
// opened again afterwards and starts empty.
func (s *Store) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeLocked(); err != nil {
		return err
	}
	if err := database.RemoveFiles(s.cfg.Path); err != nil {
		s.logger.Error("failed to delete database file", "path", s.cfg.Path, "error", err)
		return err
	}

	s.logger.Info("notes store destroyed", "path", s.cfg.Path)
	return nil
}

func (s *Store) withRepo(fn func(repo *database.Repository) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.repo == nil {
		return ErrNotOpen
	}
	return fn(s.repo)
}

// ListAll returns every stored note. Order is not part of the contract.
func (s *Store) ListAll() ([]models.SavedNote, error) {
	var notes []models.SavedNote
	err := s.withRepo(func(repo *database.Repository) error {
		var err error
		notes, err = repo.ListNotes()
		if err != nil {
			s.logger.Error("failed to list notes", "error", err)
		}
		return err
	})
	return notes, err
}

// Get fetches one note by identity.
func (s *Store) Get(id int64) (models.SavedNote, error) {
	var note models.SavedNote
	err := s.withRepo(func(repo *database.Repository) error {
		if id <= 0 {
			return ErrNotFound
		}
		found, err := repo.GetNote(id)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrNotFound
		}
		note = *found
		return nil
	})
	return note, err
}

// Insert persists a new note. A zero timestamp is replaced by the current time.
func (s *Store) Insert(note models.Note) error {
	return s.withRepo(func(repo *database.Repository) error {
		if note.TimeChanged.IsZero() {
			note.TimeChanged = s.now()
		}
		id, err := repo.InsertNote(note)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
		s.logger.Debug("note inserted", "note_id", id)
		return nil
	})
}

// Update applies changes to a saved note and refreshes its timestamp, even
// when changes is empty.
func (s *Store) Update(note models.SavedNote, changes ...models.Change) error {
	return s.withRepo(func(repo *database.Repository) error {
		if !note.Persisted() {
			return ErrNotFound
		}
		n, err := repo.UpdateNote(note.ID, changes, s.now())
		if err != nil {
			return fmt.Errorf("failed to update note %d: %w", note.ID, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Remove deletes a saved note.
func (s *Store) Remove(note models.SavedNote) error {
	return s.withRepo(func(repo *database.Repository) error {
		if !note.Persisted() {
			return ErrNotFound
		}
		n, err := repo.DeleteNote(note.ID)
		if err != nil {
			return fmt.Errorf("failed to remove note %d: %w", note.ID, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Clear removes every note and keeps the table.
func (s *Store) Clear() error {
	return s.withRepo(func(repo *database.Repository) error {
		if err := repo.ClearNotes(); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		return nil
	})
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.withRepo(func(repo *database.Repository) error {
		var err error
		count, err = repo.CountNotes()
		return err
	})
	return count, err
}
