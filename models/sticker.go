package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Sticker is a decorative tag attached to a note. The zero value means the
// note has no sticker.
type Sticker int

const (
	StickerNone Sticker = iota
	StickerAttention
	StickerGrinning
	StickerSmiling
	StickerAstonished
	StickerAngry
	StickerSad
)

var stickerNames = map[Sticker]string{
	StickerAttention:  "attention",
	StickerGrinning:   "grinning",
	StickerSmiling:    "smiling",
	StickerAstonished: "astonished",
	StickerAngry:      "angry",
	StickerSad:        "sad",
}

// Stickers lists every sticker a note can carry, in declaration order.
func Stickers() []Sticker {
	return []Sticker{
		StickerAttention,
		StickerGrinning,
		StickerSmiling,
		StickerAstonished,
		StickerAngry,
		StickerSad,
	}
}

// String returns the persisted name, or "" for StickerNone.
func (s Sticker) String() string {
	return stickerNames[s]
}

// ParseSticker decodes a persisted sticker name. Unrecognized names decode to
// StickerNone; ok is false in that case so callers can report it.
func ParseSticker(name string) (sticker Sticker, ok bool) {
	if name == "" {
		return StickerNone, true
	}
	for s, n := range stickerNames {
		if n == name {
			return s, true
		}
	}
	return StickerNone, false
}

// Value stores StickerNone as NULL.
func (s Sticker) Value() (driver.Value, error) {
	if s == StickerNone {
		return nil, nil
	}
	name, ok := stickerNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown sticker %d", int(s))
	}
	return name, nil
}

// Scan never fails on unknown names; they become StickerNone.
func (s *Sticker) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StickerNone
	case string:
		*s, _ = ParseSticker(v)
	case []byte:
		*s, _ = ParseSticker(string(v))
	default:
		return fmt.Errorf("cannot scan %T into sticker", src)
	}
	return nil
}

func (s Sticker) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Sticker) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s, _ = ParseSticker(name)
	return nil
}
