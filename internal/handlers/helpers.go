package handlers

import (
	"log/slog"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func validationFailed(c *fiber.Ctx, fields []validation.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":   true,
		"message": "Validation failed",
		"fields":  fields,
	})
}

// internalError logs the cause with full context and hands the caller an
// opaque failure.
func internalError(c *fiber.Ctx, err error) error {
	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
