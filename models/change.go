package models

// Field names a note column that a partial update may touch.
type Field string

const (
	FieldText    Field = "text"
	FieldImage   Field = "image"
	FieldSticker Field = "sticker"
)

// Change is one entry of a partial update. The timestamp is not a Change:
// the store refreshes it on every update.
type Change struct {
	Field Field
	Value any
}

func SetText(text string) Change {
	return Change{Field: FieldText, Value: text}
}

// SetImage replaces the image; a nil image removes it.
func SetImage(img Image) Change {
	return Change{Field: FieldImage, Value: img}
}

// SetSticker replaces the sticker; StickerNone removes it.
func SetSticker(sticker Sticker) Change {
	return Change{Field: FieldSticker, Value: sticker}
}

// Collapse keeps one change per field, the last one given winning.
// Fields come back in text, image, sticker order.
func Collapse(changes []Change) []Change {
	latest := make(map[Field]Change, len(changes))
	for _, c := range changes {
		latest[c.Field] = c
	}

	result := make([]Change, 0, len(latest))
	for _, f := range []Field{FieldText, FieldImage, FieldSticker} {
		if c, ok := latest[f]; ok {
			result = append(result, c)
		}
	}
	return result
}

// Apply returns the note with the changes applied in memory. Changes whose
// value does not match their field are skipped.
func (n Note) Apply(changes ...Change) Note {
	for _, c := range changes {
		switch c.Field {
		case FieldText:
			if v, ok := c.Value.(string); ok {
				n.Text = v
			}
		case FieldImage:
			if v, ok := c.Value.(Image); ok {
				n.Image = v
			}
		case FieldSticker:
			if v, ok := c.Value.(Sticker); ok {
				n.Sticker = v
			}
		}
	}
	return n
}
