package middleware

import (
	"github.com/gofiber/fiber/v2"

	"alumni-directory/internal/auth"
)

// LocalsClaims is the c.Locals key holding the verified *auth.Claims.
const LocalsClaims = "claims"

// JWTOptional verifies the Authorization header when present. A missing or
// invalid token leaves the request anonymous; resolvers decide what needs a
// caller.
func JWTOptional(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		claims, ok := tokens.Verify(header)
		if !ok {
			return c.Next()
		}
		c.Locals(LocalsClaims, claims)
		c.SetUserContext(auth.WithClaims(c.UserContext(), claims))
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ClaimsFromLocals(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": auth.ErrAuthRequired.Error()})
		}
		return c.Next()
	}
}

func ClaimsFromLocals(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(LocalsClaims).(*auth.Claims)
	return claims
}

// CallerKey identifies the caller for rate limiting: the readable ID when
// authenticated, the client IP otherwise.
func CallerKey(c *fiber.Ctx) string {
	if claims := ClaimsFromLocals(c); claims != nil {
		return claims.Type + ":" + claims.HumanID()
	}
	return "ip:" + c.IP()
}
