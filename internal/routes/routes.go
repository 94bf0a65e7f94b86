package routes

import (
	"movie-catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, movieHandler *handlers.MovieHandler) {
	api := app.Group("/api")

	movies := api.Group("/movies")
	{
		movies.Get("/", movieHandler.GetAllMovies)
		movies.Get("/:id", movieHandler.GetMovieByID)
		movies.Post("/", movieHandler.CreateMovie)
		movies.Put("/:id", movieHandler.UpdateMovie)
		movies.Delete("/:id", movieHandler.DeleteMovie)
	}
}

// MountUploads serves stored images from dir under prefix.
func MountUploads(app *fiber.App, prefix, dir string) {
	app.Static(prefix, dir, fiber.Static{
		Browse: false,
		MaxAge: 86400, // 24 hours
	})
}
