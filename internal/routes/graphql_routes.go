package routes

import (
	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/graph"
)

func SetupGraphQL(app *fiber.App, srv *graph.Server) {
	app.All("/graphql", srv.Handler())
}
