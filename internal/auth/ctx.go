package auth

import "github.com/gofiber/fiber/v2"

// ClaimsFromCtx returns the session claims RequireAuth stored on the request.
func ClaimsFromCtx(c *fiber.Ctx) (*SessionClaims, bool) {
	claims, ok := c.Locals(ContextKey).(*SessionClaims)
	return claims, ok && claims != nil
}
