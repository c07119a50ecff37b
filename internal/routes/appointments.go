package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/appointment"
)

// RegisterAppointmentRoutes wires appointment booking and management. All
// endpoints require authentication; booking honors Idempotency-Key so client
// retries never double-book a slot.
func RegisterAppointmentRoutes(r fiber.Router, h *appointment.Handler, requireAuth, requireAdmin, idempotent fiber.Handler) {
	group := r.Group("/appointments", requireAuth)
	group.Post("/", idempotent, h.Book)
	group.Get("/", h.List)
	group.Get("/patient/:patient_id", requireAdmin, h.ListForPatient)
	group.Get("/doctor/:doctor_id", requireAdmin, h.ListForDoctor)
	group.Get("/:id", h.Get)
	group.Put("/:id", requireAdmin, h.Update)
	group.Delete("/:id", h.Cancel)
	group.Put("/:id/status", requireAdmin, h.UpdateStatus)
}
