package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/contact"
)

// RegisterContactRoutes wires the public contact form and the admin triage
// endpoints.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler, requireAuth, requireAdmin fiber.Handler) {
	group := r.Group("/contacts")
	group.Post("/", h.Submit)
	group.Get("/", requireAuth, requireAdmin, h.List)
	group.Get("/:id", requireAuth, requireAdmin, h.Get)
	group.Put("/:id/status", requireAuth, requireAdmin, h.UpdateStatus)
	group.Delete("/:id", requireAuth, requireAdmin, h.Delete)
}
