package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness plus database reachability.
//
// @Summary      Health check
// @Description  Returns ok when the service and its database are reachable
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} ErrorResponse
// @Router       /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// Healthz is a bare liveness probe that touches no dependencies.
func Healthz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
