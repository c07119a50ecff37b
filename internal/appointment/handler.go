package appointment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/middleware"
	"github.com/shifa-care/shifa_api/internal/validate"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler exposes appointment HTTP endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type bookRequest struct {
	DoctorID     int64  `json:"doctor_id" validate:"gte=0"`
	DepartmentID int64  `json:"department_id" validate:"required,gt=0"`
	Date         string `json:"appointment_date" validate:"required"`
	TimeSlot     string `json:"appointment_time" validate:"required"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type listResponse struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []Appointment `json:"items"`
}

// Book creates an appointment for the authenticated patient.
func (h *Handler) Book(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return apperr.Validation("appointment_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.TimeSlot); err != nil {
		return apperr.Validation("appointment_time must be HH:MM")
	}

	created, err := h.svc.Book(c.UserContext(), BookInput{
		PatientID:    user.ID,
		PatientPhone: user.Phone,
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// List returns appointments. Patients see only their own, admins see all.
func (h *Handler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := c.QueryInt("skip", 0)
	if offset < 0 {
		offset = 0
	}

	filter := Filter{Status: c.Query("status"), Limit: limit, Offset: offset}
	if !user.IsAdmin {
		filter.PatientID = user.ID
	}

	items, total, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(listResponse{Total: total, Page: offset/limit + 1, PageSize: limit, Items: items})
}

// Get returns a single appointment.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}

	a, err := h.svc.Get(c.UserContext(), id, user.ID, user.IsAdmin)
	if err != nil {
		return err
	}
	return c.JSON(a)
}

// Cancel soft-cancels an appointment.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}

	if err := h.svc.Cancel(c.UserContext(), id, user.ID, user.IsAdmin); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

type updateRequest struct {
	DoctorID     *int64  `json:"doctor_id"`
	DepartmentID *int64  `json:"department_id"`
	Date         *string `json:"appointment_date"`
	TimeSlot     *string `json:"appointment_time"`
	Notes        *string `json:"notes"`
	Status       *string `json:"status"`
}

// Update applies a partial edit to an appointment (admin only).
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validation("invalid id")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body").WithCause(err)
	}

	input := UpdateInput{
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		TimeSlot:     req.TimeSlot,
		Notes:        req.Notes,
		Status:       req.Status,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return apperr.Validation("appointment_date must be YYYY-MM-DD")
		}
		input.Date = &date
	}
	if req.TimeSlot != nil {
		if _, err := time.Parse("15:04", *req.TimeSlot); err != nil {
			return apperr.Validation("appointment_time must be HH:MM")
		}
	}

	updated, err := h.svc.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed no-show"`
}

// UpdateStatus transitions an appointment's status (admin only).
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

// ListForPatient returns a patient's appointment history (admin only).
func (h *Handler) ListForPatient(c *fiber.Ctx) error {
	patientID, err := strconv.ParseInt(c.Params("patient_id"), 10, 64)
	if err != nil || patientID <= 0 {
		return apperr.Validation("invalid patient_id")
	}

	items, _, err := h.svc.List(c.UserContext(), Filter{PatientID: patientID})
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// ListForDoctor returns a doctor's schedule (admin only).
func (h *Handler) ListForDoctor(c *fiber.Ctx) error {
	doctorID, err := strconv.ParseInt(c.Params("doctor_id"), 10, 64)
	if err != nil || doctorID <= 0 {
		return apperr.Validation("invalid doctor_id")
	}

	items, _, err := h.svc.List(c.UserContext(), Filter{DoctorID: doctorID})
	if err != nil {
		return err
	}
	return c.JSON(items)
}
