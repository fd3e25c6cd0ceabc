package routes

import (
	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/controllers"
	"alumni-directory/internal/middleware"
	"alumni-directory/internal/services"
)

func SetupPhotos(app *fiber.App, svc *services.Services, photoBaseURL string) {
	app.Post("/upload-photo", middleware.RequireAuth(), controllers.UploadPhotoHandler(svc, photoBaseURL))

	photo := app.Group("/photo")
	photo.Get("/:fileId", controllers.GetPhotoHandler(svc))
	photo.Delete("/:fileId", middleware.RequireAuth(), controllers.DeletePhotoHandler(svc))
}
