package setup

import (
	"sticker-notes/app"
	"sticker-notes/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if !application.Store.IsOpen() {
			status = "store closed"
		}
		return c.JSON(fiber.Map{"status": status})
	})

	api := fiberApp.Group("/api")

	api.Get("/stickers", handlers.ListStickers)
	api.Get("/notes", handlers.ListNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Delete("/notes", handlers.ClearNotes(application))
	api.Get("/notes/:id", handlers.GetNote(application))
	api.Patch("/notes/:id", handlers.UpdateNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))
}
