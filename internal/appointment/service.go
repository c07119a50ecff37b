package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/directory"
	"github.com/shifa-care/shifa_api/internal/notification"
)

// Service handles appointment booking and lifecycle.
type Service struct {
	repo      Repository
	directory *directory.Service
	notifier  notification.Notifier
}

func NewService(repo Repository, dir *directory.Service, notifier notification.Notifier) *Service {
	return &Service{repo: repo, directory: dir, notifier: notifier}
}

// BookInput carries a booking request. DoctorID of zero means "any doctor in
// the department".
type BookInput struct {
	PatientID    int64
	PatientPhone string
	DoctorID     int64
	DepartmentID int64
	Date         time.Time
	TimeSlot     string
	Notes        string
}

// Book validates the department and doctor, rejects clashing slots, and
// stores the booking as confirmed.
func (s *Service) Book(ctx context.Context, input BookInput) (Appointment, error) {
	if input.Date.IsZero() || input.TimeSlot == "" {
		return Appointment{}, apperr.Validation("appointment date and time are required")
	}

	if _, err := s.directory.GetDepartment(ctx, input.DepartmentID); err != nil {
		return Appointment{}, err
	}

	if input.DoctorID != 0 {
		doctor, err := s.directory.GetDoctor(ctx, input.DoctorID)
		if err != nil {
			return Appointment{}, err
		}
		if !doctor.IsAvailable {
			return Appointment{}, apperr.Conflict("doctor is not available at this time")
		}

		taken, err := s.repo.SlotTaken(ctx, input.DoctorID, input.Date, input.TimeSlot)
		if err != nil {
			return Appointment{}, err
		}
		if taken {
			return Appointment{}, apperr.Conflict("doctor is not available at this time")
		}
	}

	created, err := s.repo.Create(ctx, Appointment{
		PatientID:    input.PatientID,
		DoctorID:     input.DoctorID,
		DepartmentID: input.DepartmentID,
		Date:         input.Date,
		TimeSlot:     input.TimeSlot,
		Notes:        input.Notes,
		Status:       StatusConfirmed,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return Appointment{}, err
	}

	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindAppointmentBooked,
		Destination: input.PatientPhone,
		Body:        fmt.Sprintf("appointment %d confirmed for %s %s", created.ID, created.Date.Format("2006-01-02"), created.TimeSlot),
	})
	return created, nil
}

// Get returns the appointment, hiding other patients' bookings from
// non-admin callers as a plain not-found.
func (s *Service) Get(ctx context.Context, id, callerID int64, isAdmin bool) (Appointment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if !isAdmin && a.PatientID != callerID {
		return Appointment{}, apperr.NotFound("appointment not found")
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

// Cancel soft-cancels a booking. Patients may cancel only their own.
func (s *Service) Cancel(ctx context.Context, id, callerID int64, isAdmin bool) error {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && a.PatientID != callerID {
		return apperr.NotFound("appointment not found")
	}
	return s.repo.UpdateStatus(ctx, a.ID, StatusCancelled)
}

// UpdateInput carries an admin edit. Nil fields stay unchanged.
type UpdateInput struct {
	DoctorID     *int64
	DepartmentID *int64
	Date         *time.Time
	TimeSlot     *string
	Notes        *string
	Status       *string
}

// Update applies an admin edit to an appointment.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Appointment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return Appointment{}, apperr.Validation("invalid appointment status")
		}
		a.Status = *input.Status
	}
	if input.DepartmentID != nil {
		if _, err := s.directory.GetDepartment(ctx, *input.DepartmentID); err != nil {
			return Appointment{}, err
		}
		a.DepartmentID = *input.DepartmentID
	}
	if input.DoctorID != nil {
		if *input.DoctorID != 0 {
			if _, err := s.directory.GetDoctor(ctx, *input.DoctorID); err != nil {
				return Appointment{}, err
			}
		}
		a.DoctorID = *input.DoctorID
	}
	if input.Date != nil {
		a.Date = *input.Date
	}
	if input.TimeSlot != nil {
		a.TimeSlot = *input.TimeSlot
	}
	if input.Notes != nil {
		a.Notes = *input.Notes
	}

	return s.repo.Update(ctx, a)
}

// UpdateStatus is the admin transition between appointment states.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Appointment, error) {
	if !ValidStatus(status) {
		return Appointment{}, apperr.Validation("invalid appointment status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Appointment{}, err
	}
	return s.repo.Get(ctx, id)
}
