package middleware

import (
	"strings"

	"filebox/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDLocalKey is the key under which the authenticated user's ID is
	// stored in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// UserEmailLocalKey is the key under which the authenticated user's
	// email is stored in Fiber's context locals.
	UserEmailLocalKey = "user_email"
)

// RequireAuth guards routes with bearer token authentication. Requests
// without a valid Authorization header are rejected with 401 before the
// handler runs. On success the token's user ID and email are stored in
// context locals for downstream handlers.
func RequireAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header")
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(UserIDLocalKey, userID)
		c.Locals(UserEmailLocalKey, claims.Email)

		return c.Next()
	}
}

// AuthUserID returns the authenticated user's ID placed in locals by
// RequireAuth. The second return is false when the request never passed
// through the auth middleware.
func AuthUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(UserIDLocalKey).(int64)
	return id, ok
}
