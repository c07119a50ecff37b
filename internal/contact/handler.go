package contact

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/validate"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler exposes contact message HTTP endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type submitRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=20"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type listResponse struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Items    []Message `json:"items"`
}

// Submit accepts a contact-form message from the public site.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	created, err := h.svc.Submit(c.UserContext(), Message{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// List returns messages for triage (admin only).
func (h *Handler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := c.QueryInt("skip", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.svc.List(c.UserContext(), Filter{
		Status: c.Query("status"),
		Email:  c.Query("email"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(listResponse{Total: total, Page: offset/limit + 1, PageSize: limit, Items: items})
}

// Get returns a single message (admin only).
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}
	m, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read resolved"`
}

// UpdateStatus transitions a message's triage status (admin only).
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	updated, err := h.svc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// Delete removes a message (admin only).
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
