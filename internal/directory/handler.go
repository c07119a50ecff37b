package directory

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/validate"
)

// Handler exposes department and doctor HTTP endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

type departmentRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"image_url" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", true)
	departments, err := h.svc.ListDepartments(c.UserContext(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(departments)
}

func (h *Handler) GetDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	department, err := h.svc.GetDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(department)
}

func (h *Handler) CreateDepartment(c *fiber.Ctx) error {
	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	created, err := h.svc.CreateDepartment(c.UserContext(), Department{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *Handler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	current, err := h.svc.GetDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	current.Name = req.Name
	current.Description = req.Description
	current.ImageURL = req.ImageURL
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := h.svc.UpdateDepartment(c.UserContext(), current)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDepartment(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type doctorRequest struct {
	UserID          int64  `json:"user_id" validate:"required,gt=0"`
	Specialty       string `json:"specialty" validate:"required,max=255"`
	ImageURL        string `json:"image_url" validate:"max=500"`
	Bio             string `json:"bio" validate:"max=2000"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
	DepartmentID    int64  `json:"department_id" validate:"required,gt=0"`
	IsAvailable     *bool  `json:"is_available"`
}

func (h *Handler) ListDoctors(c *fiber.Ctx) error {
	filter := DoctorFilter{
		DepartmentID:  int64(c.QueryInt("department_id", 0)),
		Specialty:     c.Query("specialty"),
		AvailableOnly: c.QueryBool("available_only", false),
	}
	doctors, err := h.svc.ListDoctors(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(doctors)
}

func (h *Handler) GetDoctor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doctor, err := h.svc.GetDoctor(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(doctor)
}

func (h *Handler) ListDoctorsByDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "department_id")
	if err != nil {
		return err
	}
	doctors, err := h.svc.ListDoctors(c.UserContext(), DoctorFilter{DepartmentID: id, AvailableOnly: true})
	if err != nil {
		return err
	}
	return c.JSON(doctors)
}

func (h *Handler) CreateDoctor(c *fiber.Ctx) error {
	var req doctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	created, err := h.svc.CreateDoctor(c.UserContext(), Doctor{
		UserID:          req.UserID,
		Specialty:       req.Specialty,
		ImageURL:        req.ImageURL,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		DepartmentID:    req.DepartmentID,
		IsAvailable:     available,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

func (h *Handler) UpdateDoctor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	current, err := h.svc.GetDoctor(c.UserContext(), id)
	if err != nil {
		return err
	}

	var req doctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	current.Specialty = req.Specialty
	current.ImageURL = req.ImageURL
	current.Bio = req.Bio
	current.ExperienceYears = req.ExperienceYears
	current.DepartmentID = req.DepartmentID
	if req.IsAvailable != nil {
		current.IsAvailable = *req.IsAvailable
	}

	updated, err := h.svc.UpdateDoctor(c.UserContext(), current)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteDoctor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
