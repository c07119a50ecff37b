package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/auth"
)

// RegisterAuthRoutes wires registration, sign-in, and session endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, requireAuth, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", rateLimiter, h.Login)
	group.Post("/refresh", h.Refresh)
	group.Post("/logout", h.Logout)
	group.Get("/me", requireAuth, h.Me)
	group.Post("/change-password", requireAuth, h.ChangePassword)
}
