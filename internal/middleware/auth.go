package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/auth"
	"github.com/shifa-care/shifa_api/internal/identity"
)

const userLocalKey = "user"

// RequireAuth validates the bearer access token and stores the resolved user
// in the request locals.
func RequireAuth(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return apperr.Authentication("missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		user, err := svc.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func RequireAdmin(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(userLocalKey).(identity.User)
		if !ok {
			return apperr.Authentication("not authenticated")
		}
		if err := svc.RequireAdmin(user); err != nil {
			return err
		}
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user placed by RequireAuth.
func CurrentUser(c *fiber.Ctx) (identity.User, error) {
	user, ok := c.Locals(userLocalKey).(identity.User)
	if !ok {
		return identity.User{}, apperr.Authentication("not authenticated")
	}
	return user, nil
}
