package routes

import (
	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/assistant"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/graph"
	"alumni-directory/internal/middleware"
	"alumni-directory/internal/services"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Services  *services.Services
	Tokens    *auth.Manager
	GraphQL   *graph.Server
	Generator assistant.Generator
	Bridge    *assistant.Bridge

	PhotoBaseURL string
	RateLimit    int
	// LimiterStorage shares rate-limit counters between instances; nil keeps
	// them in memory.
	LimiterStorage fiber.Storage
}

// Setup mounts every API route. Tokens are verified once up front and the
// individual routes decide whether a caller is required.
func Setup(app *fiber.App, d Deps) {
	SetupSystem(app)

	app.Use(middleware.JWTOptional(d.Tokens))

	SetupGraphQL(app, d.GraphQL)
	SetupPhotos(app, d.Services, d.PhotoBaseURL)
	SetupAssistant(app, d)
}
