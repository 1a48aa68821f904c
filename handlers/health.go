package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/utils/response"
)

// HandleCheckHealth reports whether the storage backend is reachable.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Storage is unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
