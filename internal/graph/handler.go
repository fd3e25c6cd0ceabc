package graph

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"alumni-directory/internal/services"
)

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type Server struct {
	schema  graphql.Schema
	timeout time.Duration
}

func NewServer(svc *services.Services) (*Server, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Server{schema: schema, timeout: 10 * time.Second}, nil
}

// Execute runs a document as the caller carried by ctx.
func (s *Server) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// ExecuteDocument runs a bare document with the server timeout applied.
func (s *Server) ExecuteDocument(ctx context.Context, doc string) *graphql.Result {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Execute(ctx, Request{Query: doc})
}

// Handler godoc
// @Summary GraphQL endpoint
// @Description Executes a query or mutation against the alumni directory schema
// @Tags graphql
// @Accept json
// @Produce json
// @Param request body Request true "GraphQL request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /graphql [post]
func (s *Server) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request
		if c.Method() == fiber.MethodGet {
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if vars := c.Query("variables"); vars != "" {
				if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "variables must be a JSON object"})
				}
			}
		} else if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
		defer cancel()
		return c.JSON(s.Execute(ctx, req))
	}
}
