package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackhub/hackhub/internal/models"
)

// AdminOnly ensures that only users with the "admin" role can access admin
// routes. Must run after Auth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Admins only."})
		}
		return c.Next()
	}
}
