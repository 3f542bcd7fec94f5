package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sticker-notes/models"
)

// ErrDecode is returned when a stored row cannot be turned back into a note.
var ErrDecode = errors.New("failed to decode note row")

// UnknownStickerFunc is told about sticker values that decoded to none.
type UnknownStickerFunc func(id int64, raw string)

// ==================== NOTE OPERATIONS ====================

type Repository struct {
	db             *DB
	unknownSticker UnknownStickerFunc
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// OnUnknownSticker registers a hook for unrecognized sticker values.
func (r *Repository) OnUnknownSticker(fn UnknownStickerFunc) {
	r.unknownSticker = fn
}

const selectNoteColumns = `SELECT id, text, timeChanged, image, sticker FROM notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanNote(row rowScanner) (models.SavedNote, error) {
	var note models.SavedNote
	var sticker sql.NullString

	if err := row.Scan(&note.ID, &note.Text, &note.TimeChanged, &note.Image, &sticker); err != nil {
		return models.SavedNote{}, err
	}

	if sticker.Valid {
		s, ok := models.ParseSticker(sticker.String)
		if !ok && r.unknownSticker != nil {
			r.unknownSticker(note.ID, sticker.String)
		}
		note.Sticker = s
	}

	return note, nil
}

// ListNotes returns every note in the table
func (r *Repository) ListNotes() ([]models.SavedNote, error) {
	rows, err := r.db.Query(selectNoteColumns + ` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.SavedNote, 0)
	for rows.Next() {
		note, err := r.scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// GetNote retrieves a single note; a missing row yields nil, nil
func (r *Repository) GetNote(id int64) (*models.SavedNote, error) {
	note, err := r.scanNote(r.db.QueryRow(selectNoteColumns+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &note, nil
}

// InsertNote stores a new row and returns the identity SQLite assigned
func (r *Repository) InsertNote(note models.Note) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO notes (text, timeChanged, image, sticker)
		VALUES (?, ?, ?, ?)
	`, note.Text, note.TimeChanged, note.Image, note.Sticker)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateNote applies a partial update and always refreshes timeChanged.
// It returns the number of rows touched so callers can detect a missing id.
func (r *Repository) UpdateNote(id int64, changes []models.Change, changedAt time.Time) (int64, error) {
	sets := []string{"timeChanged = ?"}
	args := []any{changedAt}

	for _, c := range models.Collapse(changes) {
		value, err := columnValue(c)
		if err != nil {
			return 0, err
		}
		sets = append(sets, string(c.Field)+" = ?")
		args = append(args, value)
	}
	args = append(args, id)

	result, err := r.db.Exec(`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func columnValue(c models.Change) (any, error) {
	switch c.Field {
	case models.FieldText:
		if v, ok := c.Value.(string); ok {
			return v, nil
		}
	case models.FieldImage:
		if v, ok := c.Value.(models.Image); ok {
			return v, nil
		}
	case models.FieldSticker:
		if v, ok := c.Value.(models.Sticker); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("invalid change for field %q: %T", c.Field, c.Value)
}

// DeleteNote permanently removes a note and returns the number of rows removed
func (r *Repository) DeleteNote(id int64) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ClearNotes empties the table
func (r *Repository) ClearNotes() error {
	_, err := r.db.Exec(`DELETE FROM notes`)
	return err
}

func (r *Repository) CountNotes() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}
