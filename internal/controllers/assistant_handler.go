package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/assistant"
	"alumni-directory/internal/middleware"
)

// TurnResult lists the turns produced by one assistant submission.
type TurnResult struct {
	Turns []assistant.Turn `json:"turns"`
}

// AssistantQueryHandler godoc
// @Summary Generate a GraphQL document
// @Description Forwards a natural-language request to the query generator without executing it
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body assistant.QueryRequest true "Request and conversation history"
// @Success 200 {object} assistant.QueryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} assistant.QueryResponse
// @Router /assistant/query [post]
func AssistantQueryHandler(gen assistant.Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistant.QueryRequest
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No query provided"})
		}
		doc, err := gen.Generate(c.UserContext(), req.Query, req.History)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(assistant.QueryResponse{Error: "LLM service error: " + err.Error()})
		}
		return c.JSON(assistant.QueryResponse{Success: true, GraphQLQuery: doc, OriginalQuery: req.Query})
	}
}

// AssistantTurnHandler godoc
// @Summary Run an assistant turn
// @Description Generates a document for the request, binds it to the caller and executes it. Failures are reported as error turns.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body assistant.QueryRequest true "Request and conversation history"
// @Success 200 {object} TurnResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /assistant/turn [post]
func AssistantTurnHandler(bridge *assistant.Bridge) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistant.QueryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
		}

		caller := assistant.CallerFromClaims(middleware.ClaimsFromLocals(c))
		turns, err := bridge.Run(c.UserContext(), caller, req.Query, req.History)
		if errors.Is(err, assistant.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No query provided"})
		}
		return c.JSON(TurnResult{Turns: turns})
	}
}
