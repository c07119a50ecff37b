package admin

import (
	"github.com/gofiber/fiber/v2"
)

const (
	defaultStatsWindowDays = 30
	maxStatsWindowDays     = 365
)

// Handler exposes the admin statistics endpoints. Routes mounting these
// handlers are expected to apply the admin gate.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Dashboard returns the headline counters.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.svc.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// AppointmentStats returns the per-status breakdown with a trailing window.
func (h *Handler) AppointmentStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultStatsWindowDays)
	if days < 1 || days > maxStatsWindowDays {
		days = defaultStatsWindowDays
	}
	stats, err := h.svc.Appointments(c.UserContext(), days)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// UserStats returns the role/activity breakdown.
func (h *Handler) UserStats(c *fiber.Ctx) error {
	stats, err := h.svc.Users(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// MessageStats returns the contact message triage breakdown.
func (h *Handler) MessageStats(c *fiber.Ctx) error {
	stats, err := h.svc.Messages(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
