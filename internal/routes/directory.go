package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/directory"
)

// RegisterDirectoryRoutes wires department and doctor endpoints. Reads are
// public, writes are admin-only.
func RegisterDirectoryRoutes(r fiber.Router, h *directory.Handler, requireAuth, requireAdmin fiber.Handler) {
	departments := r.Group("/departments")
	departments.Get("/", h.ListDepartments)
	departments.Get("/:id", h.GetDepartment)
	departments.Post("/", requireAuth, requireAdmin, h.CreateDepartment)
	departments.Put("/:id", requireAuth, requireAdmin, h.UpdateDepartment)
	departments.Delete("/:id", requireAuth, requireAdmin, h.DeleteDepartment)

	doctors := r.Group("/doctors")
	doctors.Get("/", h.ListDoctors)
	doctors.Get("/department/:department_id", h.ListDoctorsByDepartment)
	doctors.Get("/:id", h.GetDoctor)
	doctors.Post("/", requireAuth, requireAdmin, h.CreateDoctor)
	doctors.Put("/:id", requireAuth, requireAdmin, h.UpdateDoctor)
	doctors.Delete("/:id", requireAuth, requireAdmin, h.DeleteDoctor)
}
