package store

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sticker-notes/database"
	"sticker-notes/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "notes_database.sqlite3")
	s := New(Config{Path: dbPath}, testLogger(), opts...)
	require.NoError(t, s.Open())

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func orangePixel(t *testing.T) models.Image {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 165, A: 255})
	encoded, err := models.EncodeImage(img)
	require.NoError(t, err)
	return encoded
}

func findSaved(t *testing.T, s *Store, text string) models.SavedNote {
	t.Helper()

	notes, err := s.ListAll()
	require.NoError(t, err)
	for _, n := range notes {
		if n.Text == text {
			return n
		}
	}
	t.Fatalf("note %q not found", text)
	return models.SavedNote{}
}

func TestStoreLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "notes_database.sqlite3")
	s := New(Config{Path: dbPath}, testLogger())

	t.Run("New store starts closed", func(t *testing.T) {
		assert.False(t, s.IsOpen())
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Open creates the database file", func(t *testing.T) {
		require.NoError(t, s.Open())
		assert.True(t, s.IsOpen())
		_, err := os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("Second open is a no-op", func(t *testing.T) {
		require.NoError(t, s.Insert(models.NewNote("kept", nil, models.StickerNone)))
		require.NoError(t, s.Open())

		count, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Destroy removes the file and closes", func(t *testing.T) {
		require.NoError(t, s.Destroy())
		assert.False(t, s.IsOpen())
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Reopen after destroy starts empty", func(t *testing.T) {
		require.NoError(t, s.Open())
		notes, err := s.ListAll()
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Open, destroy, open, destroy", func(t *testing.T) {
		require.NoError(t, s.Destroy())
		require.NoError(t, s.Open())
		require.NoError(t, s.Destroy())
		assert.False(t, s.IsOpen())
	})

	t.Run("Close keeps the data", func(t *testing.T) {
		require.NoError(t, s.Open())
		require.NoError(t, s.Insert(models.NewNote("survives close", nil, models.StickerSad)))
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		require.NoError(t, s.Open())
		note := findSaved(t, s, "survives close")
		assert.Equal(t, models.StickerSad, note.Sticker)
		require.NoError(t, s.Destroy())
	})
}

func TestStoreOpenFailure(t *testing.T) {
	// A regular file where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := New(Config{Path: filepath.Join(blocker, "notes.sqlite3")}, testLogger())
	assert.Error(t, s.Open())
	assert.False(t, s.IsOpen())
}

func TestStoreClosedOperations(t *testing.T) {
	s := New(Config{Path: filepath.Join(t.TempDir(), "closed.sqlite3")}, testLogger())
	saved := models.SavedNote{ID: 1, Note: models.NewNote("x", nil, models.StickerNone)}

	tests := []struct {
		name string
		call func() error
	}{
		{"ListAll", func() error { _, err := s.ListAll(); return err }},
		{"Get", func() error { _, err := s.Get(1); return err }},
		{"Insert", func() error { return s.Insert(saved.Note) }},
		{"Update", func() error { return s.Update(saved, models.SetText("y")) }},
		{"Remove", func() error { return s.Remove(saved) }},
		{"Clear", func() error { return s.Clear() }},
		{"Count", func() error { _, err := s.Count(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrNotOpen)
		})
	}
}

func TestStoreInsertAndList(t *testing.T) {
	s := setupTestStore(t)
	img := orangePixel(t)

	original := models.NewNote("Buy milk", img, models.StickerAttention)
	require.NoError(t, s.Insert(original))
	require.NoError(t, s.Insert(models.NewNote("Plain", nil, models.StickerNone)))

	notes, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, notes, 2)

	saved := findSaved(t, s, "Buy milk")
	assert.True(t, saved.Persisted())
	assert.True(t, saved.SameContent(original))
	assert.True(t, saved.TimeChanged.Equal(original.TimeChanged))

	decoded, err := saved.Image.Decode()
	require.NoError(t, err)
	r, g, _, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.NotZero(t, g)

	plain := findSaved(t, s, "Plain")
	assert.Nil(t, plain.Image)
	assert.Equal(t, models.StickerNone, plain.Sticker)
	assert.NotEqual(t, saved.ID, plain.ID)
}

func TestStoreInsertStampsZeroTime(t *testing.T) {
	fixed := time.Date(2019, 3, 11, 10, 0, 0, 0, time.UTC)
	s := setupTestStore(t, WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Insert(models.Note{Text: "no time"}))

	saved := findSaved(t, s, "no time")
	assert.True(t, saved.TimeChanged.Equal(fixed))
}

func TestStoreGet(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Insert(models.NewNote("first", nil, models.StickerGrinning)))
	saved := findSaved(t, s, "first")

	t.Run("Existing note", func(t *testing.T) {
		got, err := s.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.True(t, got.SameContent(saved.Note))
	})

	t.Run("Missing note", func(t *testing.T) {
		_, err := s.Get(saved.ID + 100)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Invalid identity", func(t *testing.T) {
		_, err := s.Get(0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreUpdate(t *testing.T) {
	created := time.Date(2019, 3, 11, 10, 0, 0, 0, time.UTC)
	clock := created.Add(time.Hour)
	s := setupTestStore(t, WithClock(func() time.Time { return clock }))
	img := orangePixel(t)

	require.NoError(t, s.Insert(models.Note{
		Text:        "draft",
		TimeChanged: created,
		Image:       img,
		Sticker:     models.StickerSmiling,
	}))
	saved := findSaved(t, s, "draft")

	t.Run("Empty change set only refreshes timestamp", func(t *testing.T) {
		require.NoError(t, s.Update(saved))

		got, err := s.Get(saved.ID)
		require.NoError(t, err)
		assert.True(t, got.TimeChanged.Equal(clock))
		assert.True(t, got.SameContent(saved.Note))
	})

	t.Run("Partial update touches only named fields", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		require.NoError(t, s.Update(saved, models.SetText("final")))

		got, err := s.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", got.Text)
		assert.Equal(t, models.StickerSmiling, got.Sticker)
		assert.Equal(t, img, got.Image)
		assert.True(t, got.TimeChanged.Equal(clock))
	})

	t.Run("Image and sticker can be removed", func(t *testing.T) {
		require.NoError(t, s.Update(saved, models.SetImage(nil), models.SetSticker(models.StickerNone)))

		got, err := s.Get(saved.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Image)
		assert.Equal(t, models.StickerNone, got.Sticker)
		assert.Equal(t, "final", got.Text)
	})

	t.Run("Later change for the same field wins", func(t *testing.T) {
		require.NoError(t, s.Update(saved, models.SetSticker(models.StickerAngry), models.SetSticker(models.StickerSad)))

		got, err := s.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StickerSad, got.Sticker)
	})

	t.Run("Unknown identity", func(t *testing.T) {
		missing := models.SavedNote{ID: saved.ID + 100, Note: saved.Note}
		assert.ErrorIs(t, s.Update(missing, models.SetText("x")), ErrNotFound)
	})

	t.Run("Never persisted note", func(t *testing.T) {
		unsaved := models.SavedNote{Note: models.NewNote("fresh", nil, models.StickerNone)}
		assert.ErrorIs(t, s.Update(unsaved, models.SetText("x")), ErrNotFound)
	})

	t.Run("Malformed change is rejected", func(t *testing.T) {
		bad := models.Change{Field: models.FieldText, Value: 42}
		err := s.Update(saved, bad)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreRemove(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Insert(models.NewNote("to remove", nil, models.StickerNone)))
	require.NoError(t, s.Insert(models.NewNote("to keep", nil, models.StickerNone)))
	saved := findSaved(t, s, "to remove")

	require.NoError(t, s.Remove(saved))
	assert.ErrorIs(t, s.Remove(saved), ErrNotFound)
	assert.ErrorIs(t, s.Remove(models.SavedNote{}), ErrNotFound)

	notes, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "to keep", notes[0].Text)
}

func TestStoreClear(t *testing.T) {
	s := setupTestStore(t)
	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.Insert(models.NewNote(text, nil, models.StickerNone)))
	}

	require.NoError(t, s.Clear())

	notes, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Clearing an empty store is fine
	require.NoError(t, s.Clear())
}

func TestStoreUnknownStickerDecodesToNone(t *testing.T) {
	s := setupTestStore(t)

	raw, err := database.New(s.Path(), time.Second)
	require.NoError(t, err)
	defer raw.Close()

	_, err = raw.Exec(`INSERT INTO notes (text, timeChanged, sticker) VALUES (?, ?, ?)`,
		"odd sticker", time.Now(), "thumbs-up")
	require.NoError(t, err)

	saved := findSaved(t, s, "odd sticker")
	assert.Equal(t, models.StickerNone, saved.Sticker)
}

func TestStoreUndecodableRow(t *testing.T) {
	s := setupTestStore(t)

	raw, err := database.New(s.Path(), time.Second)
	require.NoError(t, err)
	defer raw.Close()

	// a REAL timestamp cannot be scanned into time.Time
	_, err = raw.Exec(`INSERT INTO notes (text, timeChanged) VALUES (?, ?)`, "bad time", 1.5)
	require.NoError(t, err)

	_, err = s.ListAll()
	assert.ErrorIs(t, err, ErrDecode)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, s.Insert(models.NewNote("concurrent", nil, models.StickerSmiling)))
				_, err := s.ListAll()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 80, count)
}
