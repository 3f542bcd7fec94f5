package models

import "time"

// Note is the set of fields a note carries. A bare Note has never been
// persisted; the store hands back SavedNote values once it has an identity.
type Note struct {
	Text        string    `json:"text"`
	TimeChanged time.Time `json:"time_changed"`
	Image       Image     `json:"image,omitempty"`
	Sticker     Sticker   `json:"sticker"`
}

// NewNote creates an unsaved note stamped with the current time.
func NewNote(text string, image Image, sticker Sticker) Note {
	return Note{
		Text:        text,
		TimeChanged: time.Now(),
		Image:       image,
		Sticker:     sticker,
	}
}

// SavedNote is a note that has been assigned a row identity by the store.
type SavedNote struct {
	ID int64 `json:"id"`
	Note
}

// Persisted reports whether the note carries a usable identity.
func (n SavedNote) Persisted() bool {
	return n.ID > 0
}

// SameContent compares everything except identity and timestamp.
func (n Note) SameContent(other Note) bool {
	return n.Text == other.Text &&
		n.Sticker == other.Sticker &&
		string(n.Image) == string(other.Image)
}

type CreateNoteRequest struct {
	Text    string `json:"text" validate:"max=100000"`
	Image   []byte `json:"image,omitempty" validate:"omitempty,pngimage"`
	Sticker string `json:"sticker" validate:"omitempty,sticker"`
}

// UpdateNoteRequest carries a partial update. Nil fields are left unchanged;
// ClearImage and an empty Sticker remove the respective values.
type UpdateNoteRequest struct {
	Text       *string `json:"text,omitempty" validate:"omitempty,max=100000"`
	Image      []byte  `json:"image,omitempty" validate:"omitempty,pngimage"`
	ClearImage bool    `json:"clear_image,omitempty"`
	Sticker    *string `json:"sticker,omitempty" validate:"omitempty,sticker"`
}
