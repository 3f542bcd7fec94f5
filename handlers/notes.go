package handlers

import (
	"sticker-notes/app"
	"sticker-notes/models"

	"github.com/gofiber/fiber/v2"
)

func noteID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// ListNotes returns every note, newest first
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.NoteService.List()
		if err != nil {
			return noteError(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"notes": notes,
			"count": len(notes),
		})
	}
}

// GetNote retrieves a single note by id
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		note, err := a.NoteService.Get(id)
		if err != nil {
			return noteError(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote stores a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.NoteService.Create(req); err != nil {
			return noteError(c, "Failed to save note", err)
		}

		return created(c, fiber.Map{
			"message": "Note created successfully",
		})
	}
}

// UpdateNote applies a partial update to an existing note
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.NoteService.Update(id, req); err != nil {
			return noteError(c, "Failed to update note", err)
		}

		note, err := a.NoteService.Get(id)
		if err != nil {
			return noteError(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := noteID(c)
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		if err := a.NoteService.Delete(id); err != nil {
			return noteError(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{
			"message": "Note deleted successfully",
		})
	}
}

// ClearNotes removes all notes
func ClearNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.NoteService.Clear(); err != nil {
			return noteError(c, "Failed to clear notes", err)
		}

		return success(c, fiber.Map{
			"message": "All notes deleted",
		})
	}
}

// ListStickers returns the sticker names a note may carry
func ListStickers(c *fiber.Ctx) error {
	stickers := models.Stickers()
	names := make([]string, 0, len(stickers))
	for _, s := range stickers {
		names = append(names, s.String())
	}
	return success(c, fiber.Map{"stickers": names})
}
