package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the structured error body used by every route:
// {"error": "..."} with an optional detail string.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, detail ...string) error {
	body := fiber.Map{"error": message}
	if len(detail) > 0 && detail[0] != "" {
		body["detail"] = detail[0]
	}
	return c.Status(statusCode).JSON(body)
}

// ValidationErrorResponse reports per-field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": fields,
	})
}
