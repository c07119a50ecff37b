package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/catalog"
)

// RegisterCatalogRoutes wires hospital service, ambulance, and eye product
// endpoints. Reads are public, writes are admin-only.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler, requireAuth, requireAdmin fiber.Handler) {
	services := r.Group("/services")
	services.Get("/", h.ListServices)
	services.Get("/:id", h.GetService)
	services.Post("/", requireAuth, requireAdmin, h.CreateService)
	services.Put("/:id", requireAuth, requireAdmin, h.UpdateService)
	services.Delete("/:id", requireAuth, requireAdmin, h.DeleteService)

	ambulances := r.Group("/ambulance-services")
	ambulances.Get("/", h.ListAmbulances)
	ambulances.Get("/:id", h.GetAmbulance)
	ambulances.Post("/", requireAuth, requireAdmin, h.CreateAmbulance)
	ambulances.Put("/:id", requireAuth, requireAdmin, h.UpdateAmbulance)
	ambulances.Delete("/:id", requireAuth, requireAdmin, h.DeleteAmbulance)

	products := r.Group("/eye-products")
	products.Get("/", h.ListEyeProducts)
	products.Get("/:id", h.GetEyeProduct)
	products.Post("/", requireAuth, requireAdmin, h.CreateEyeProduct)
	products.Put("/:id", requireAuth, requireAdmin, h.UpdateEyeProduct)
	products.Delete("/:id", requireAuth, requireAdmin, h.DeleteEyeProduct)
}
