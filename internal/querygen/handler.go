package querygen

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/assistant"
)

// Generator turns utterances into GraphQL documents through a Completer.
type Generator struct {
	llm Completer
}

func NewGenerator(llm Completer) *Generator {
	return &Generator{llm: llm}
}

func (g *Generator) Generate(ctx context.Context, query string, history []assistant.Turn) (string, error) {
	prompt, err := BuildPrompt(query, history)
	if err != nil {
		return "", err
	}
	answer, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("error generating GraphQL query: %w", err)
	}
	return Clean(answer), nil
}

// QueryHandler godoc
// @Summary Generate a GraphQL document
// @Description Converts a natural-language request into a GraphQL query or mutation
// @Tags llm
// @Accept json
// @Produce json
// @Param request body assistant.QueryRequest true "Natural-language request and history"
// @Success 200 {object} assistant.QueryResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} assistant.QueryResponse
// @Router /api/llm/query [post]
func QueryHandler(gen assistant.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistant.QueryRequest
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No query provided"})
		}

		doc, err := gen.Generate(c.UserContext(), req.Query, req.History)
		if err != nil {
			log.Printf("querygen: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(assistant.QueryResponse{Error: err.Error()})
		}
		return c.JSON(assistant.QueryResponse{Success: true, GraphQLQuery: doc, OriginalQuery: req.Query})
	}
}

// HealthHandler godoc
// @Summary Query generator health
// @Tags llm
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/llm/health [get]
func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": "LLM Query Generator"})
	}
}

// Setup mounts the service under /api/llm.
func Setup(app *fiber.App, gen assistant.Generator) {
	llm := app.Group("/api/llm")
	llm.Post("/query", QueryHandler(gen))
	llm.Get("/health", HealthHandler())
}
