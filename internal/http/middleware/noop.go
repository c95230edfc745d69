package middleware

import "github.com/gofiber/fiber/v2"

// Noop is a pass-through middleware, kept as the template for new middleware.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
