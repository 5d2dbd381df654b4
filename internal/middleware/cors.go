package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// MessageCORS is returned to cross-origin callers that are not allowed.
const MessageCORS = "Error de CORS"

// OriginGuard rejects requests whose Origin header is set and differs from
// allowed. Requests without an Origin header pass untouched.
func OriginGuard(allowed string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin != "" && origin != allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": MessageCORS,
			})
		}
		return c.Next()
	}
}

// CORS returns the guard followed by the CORS response headers for allowed.
func CORS(allowed string) []fiber.Handler {
	return []fiber.Handler{
		OriginGuard(allowed),
		cors.New(cors.Config{
			AllowOrigins: allowed,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}),
	}
}
