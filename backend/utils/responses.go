package utils

import (
	"github.com/gofiber/fiber/v2"
)

// The challenge and task endpoints answer with plain-text statuses; the rest
// of the API speaks JSON. Both conventions predate this backend and are kept.

// Text sends a plain-text status message.
func Text(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).SendString(message)
}

// BadRequest sends a plain-text 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Text(c, fiber.StatusBadRequest, message)
}

// NotFound sends a plain-text 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Text(c, fiber.StatusNotFound, message)
}

// InternalError sends a plain-text 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Text(c, fiber.StatusInternalServerError, message)
}

// JSONError sends a JSON error body for the endpoints that expect one.
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
