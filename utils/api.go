package utils

import (
	fiber "github.com/gofiber/fiber/v2"
)

// MakeHTTPHandleFunc binds a dependency to a handler that needs one. An error
// the handler did not turn into a response becomes a 500.
func MakeHTTPHandleFunc[D any](handler func(c *fiber.Ctx, dep D) error, dep D) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, dep); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return nil
	}
}
