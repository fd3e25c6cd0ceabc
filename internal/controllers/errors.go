package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/auth"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/services"
)

// ErrorResponse is the JSON body of every failed REST call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		storage    *services.StorageError
	)
	status := fiber.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.As(err, &validation), errors.Is(err, photostore.ErrUnsupportedType):
		status = fiber.StatusBadRequest
	case errors.Is(err, photostore.ErrTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.Is(err, auth.ErrAuthRequired):
		status = fiber.StatusUnauthorized
	case errors.Is(err, auth.ErrAccessDenied):
		status = fiber.StatusForbidden
	case errors.As(err, &storage):
		status = fiber.StatusBadGateway
		log.Printf("photo storage failure: %v", err)
	default:
		log.Printf("request %s %s failed: %v", c.Method(), c.Path(), err)
		msg = "internal server error"
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
