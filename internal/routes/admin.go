package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/admin"
)

// RegisterAdminRoutes wires the admin statistics endpoints behind the admin gate.
func RegisterAdminRoutes(r fiber.Router, h *admin.Handler, requireAuth, requireAdmin fiber.Handler) {
	group := r.Group("/admin", requireAuth, requireAdmin)
	group.Get("/dashboard", h.Dashboard)
	group.Get("/appointments/stats", h.AppointmentStats)
	group.Get("/users/stats", h.UserStats)
	group.Get("/messages/stats", h.MessageStats)
}
