package catalog

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/validate"
)

// Handler exposes the catalog HTTP endpoints.
type Handler struct {
	svc *Catalog
}

func NewHandler(svc *Catalog) *Handler {
	return &Handler{svc: svc}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}

func boolOrDefault(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}

type serviceRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Icon        string `json:"icon" validate:"max=100"`
	IsActive    *bool  `json:"is_active"`
}

func (h *Handler) ListServices(c *fiber.Ctx) error {
	services, err := h.svc.ListServices(c.UserContext(), c.QueryBool("active_only", true))
	if err != nil {
		return err
	}
	return c.JSON(services)
}

func (h *Handler) GetService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	service, err := h.svc.GetService(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(service)
}

func (h *Handler) CreateService(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	created, err := h.svc.CreateService(c.UserContext(), Service{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    boolOrDefault(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *Handler) UpdateService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	current, err := h.svc.GetService(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	current.Name = req.Name
	current.Description = req.Description
	current.Icon = req.Icon
	current.IsActive = boolOrDefault(req.IsActive, current.IsActive)

	updated, err := h.svc.UpdateService(c.UserContext(), current)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteService(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type ambulanceRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Description    string `json:"description" validate:"max=1000"`
	Phone          string `json:"phone" validate:"required,min=10,max=20"`
	Location       string `json:"location" validate:"max=500"`
	Latitude       string `json:"latitude" validate:"max=50"`
	Longitude      string `json:"longitude" validate:"max=50"`
	Available247   *bool  `json:"available_24_7"`
	AmbulanceCount int    `json:"ambulance_count" validate:"gte=0"`
	IsActive       *bool  `json:"is_active"`
}

func (h *Handler) ListAmbulances(c *fiber.Ctx) error {
	ambulances, err := h.svc.ListAmbulances(c.UserContext(), c.QueryBool("active_only", true))
	if err != nil {
		return err
	}
	return c.JSON(ambulances)
}

func (h *Handler) GetAmbulance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ambulance, err := h.svc.GetAmbulance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ambulance)
}

func (h *Handler) CreateAmbulance(c *fiber.Ctx) error {
	var req ambulanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	count := req.AmbulanceCount
	if count == 0 {
		count = 1
	}
	created, err := h.svc.CreateAmbulance(c.UserContext(), Ambulance{
		Name:           req.Name,
		Description:    req.Description,
		Phone:          req.Phone,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Available247:   boolOrDefault(req.Available247, true),
		AmbulanceCount: count,
		IsActive:       boolOrDefault(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *Handler) UpdateAmbulance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	current, err := h.svc.GetAmbulance(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req ambulanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	current.Name = req.Name
	current.Description = req.Description
	current.Phone = req.Phone
	current.Location = req.Location
	current.Latitude = req.Latitude
	current.Longitude = req.Longitude
	current.Available247 = boolOrDefault(req.Available247, current.Available247)
	if req.AmbulanceCount > 0 {
		current.AmbulanceCount = req.AmbulanceCount
	}
	current.IsActive = boolOrDefault(req.IsActive, current.IsActive)

	updated, err := h.svc.UpdateAmbulance(c.UserContext(), current)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteAmbulance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAmbulance(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type eyeProductRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Description   string `json:"description" validate:"max=1000"`
	Category      string `json:"category" validate:"required,max=100"`
	Brand         string `json:"brand" validate:"max=255"`
	Price         string `json:"price" validate:"max=50"`
	ImageURL      string `json:"image_url" validate:"max=500"`
	StockQuantity int    `json:"stock_quantity" validate:"gte=0"`
	IsAvailable   *bool  `json:"is_available"`
	IsActive      *bool  `json:"is_active"`
}

func (h *Handler) ListEyeProducts(c *fiber.Ctx) error {
	products, err := h.svc.ListEyeProducts(c.UserContext(), c.Query("category"), c.QueryBool("active_only", true))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *Handler) GetEyeProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.svc.GetEyeProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *Handler) CreateEyeProduct(c *fiber.Ctx) error {
	var req eyeProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	created, err := h.svc.CreateEyeProduct(c.UserContext(), EyeProduct{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsAvailable:   boolOrDefault(req.IsAvailable, true),
		IsActive:      boolOrDefault(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *Handler) UpdateEyeProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	current, err := h.svc.GetEyeProduct(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req eyeProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	current.Name = req.Name
	current.Description = req.Description
	current.Category = req.Category
	current.Brand = req.Brand
	current.Price = req.Price
	current.ImageURL = req.ImageURL
	current.StockQuantity = req.StockQuantity
	current.IsAvailable = boolOrDefault(req.IsAvailable, current.IsAvailable)
	current.IsActive = boolOrDefault(req.IsActive, current.IsActive)

	updated, err := h.svc.UpdateEyeProduct(c.UserContext(), current)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteEyeProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEyeProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
