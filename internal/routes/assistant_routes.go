package routes

import (
	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/controllers"
	"alumni-directory/internal/middleware"
	"alumni-directory/internal/ratelimit"
)

func SetupAssistant(app *fiber.App, d Deps) {
	assistant := app.Group("/assistant", ratelimit.PerCaller(d.RateLimit, d.LimiterStorage))

	assistant.Post("/query", controllers.AssistantQueryHandler(d.Generator))
	assistant.Post("/turn", middleware.RequireAuth(), controllers.AssistantTurnHandler(d.Bridge))
}
