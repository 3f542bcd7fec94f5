package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"image"
	"image/png"
)

// Image is an embedded picture kept as PNG bytes, the form the notes table
// stores in its blob column.
type Image []byte

// EncodeImage converts any decoded image to its PNG form.
func EncodeImage(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return Image(buf.Bytes()), nil
}

// Decode parses the PNG bytes back into an image.
func (i Image) Decode() (image.Image, error) {
	if len(i) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	img, err := png.Decode(bytes.NewReader(i))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// IsPNG checks the payload without decoding pixel data.
func IsPNG(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, err := png.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// Value stores an empty image as NULL.
func (i Image) Value() (driver.Value, error) {
	if len(i) == 0 {
		return nil, nil
	}
	return []byte(i), nil
}

func (i *Image) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = nil
	case []byte:
		*i = append(Image(nil), v...)
	default:
		return fmt.Errorf("cannot scan %T into image", src)
	}
	return nil
}
