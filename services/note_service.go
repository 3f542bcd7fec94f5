package services

import (
	"errors"
	"fmt"
	"sort"

	"sticker-notes/models"
	"sticker-notes/store"
)

// NoteService handles business logic for notes
type NoteService struct {
	repo          NoteRepository
	maxImageBytes int
}

// NewNoteService creates a new note service. maxImageBytes <= 0 disables the
// image size check.
func NewNoteService(repo NoteRepository, maxImageBytes int) *NoteService {
	return &NoteService{
		repo:          repo,
		maxImageBytes: maxImageBytes,
	}
}

// List returns all notes, most recently changed first
func (ns *NoteService) List() ([]models.SavedNote, error) {
	notes, err := ns.repo.ListAll()
	if err != nil {
		return nil, mapStoreError(err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].TimeChanged.Equal(notes[j].TimeChanged) {
			return notes[i].ID > notes[j].ID
		}
		return notes[i].TimeChanged.After(notes[j].TimeChanged)
	})
	return notes, nil
}

// Get retrieves a single note
func (ns *NoteService) Get(id int64) (models.SavedNote, error) {
	note, err := ns.repo.Get(id)
	if err != nil {
		return models.SavedNote{}, mapStoreError(err)
	}
	return note, nil
}

// Create stores a new note built from the request
func (ns *NoteService) Create(req models.CreateNoteRequest) error {
	if err := ns.checkImage(req.Image); err != nil {
		return err
	}

	sticker, _ := models.ParseSticker(req.Sticker)
	note := models.NewNote(req.Text, models.Image(req.Image), sticker)

	return mapStoreError(ns.repo.Insert(note))
}

// Update applies the fields present in the request to an existing note
func (ns *NoteService) Update(id int64, req models.UpdateNoteRequest) error {
	if err := ns.checkImage(req.Image); err != nil {
		return err
	}

	note, err := ns.repo.Get(id)
	if err != nil {
		return mapStoreError(err)
	}

	return mapStoreError(ns.repo.Update(note, ChangesFromRequest(req)...))
}

// Delete removes a note
func (ns *NoteService) Delete(id int64) error {
	note, err := ns.repo.Get(id)
	if err != nil {
		return mapStoreError(err)
	}
	return mapStoreError(ns.repo.Remove(note))
}

// Clear removes every note
func (ns *NoteService) Clear() error {
	return mapStoreError(ns.repo.Clear())
}

// ChangesFromRequest turns the present fields of a request into changes.
// A new image takes precedence over clear_image.
func ChangesFromRequest(req models.UpdateNoteRequest) []models.Change {
	var changes []models.Change

	if req.Text != nil {
		changes = append(changes, models.SetText(*req.Text))
	}
	if len(req.Image) > 0 {
		changes = append(changes, models.SetImage(models.Image(req.Image)))
	} else if req.ClearImage {
		changes = append(changes, models.SetImage(nil))
	}
	if req.Sticker != nil {
		sticker, _ := models.ParseSticker(*req.Sticker)
		changes = append(changes, models.SetSticker(sticker))
	}

	return changes
}

func (ns *NoteService) checkImage(image []byte) error {
	if ns.maxImageBytes > 0 && len(image) > ns.maxImageBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(image), ns.maxImageBytes)
	}
	return nil
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNoteNotFound
	case errors.Is(err, store.ErrNotOpen):
		return ErrStoreClosed
	default:
		return err
	}
}
