package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/cache"
	"github.com/shifa-care/shifa_api/internal/directory"
	"github.com/shifa-care/shifa_api/internal/logging"
	"github.com/shifa-care/shifa_api/internal/notification"
)

func testBookingService(t *testing.T) (*Service, directory.Department, directory.Doctor) {
	t.Helper()
	ctx := context.Background()

	dir := directory.NewService(directory.NewMemoryRepository(), cache.New(nil, 0))
	dept, err := dir.CreateDepartment(ctx, directory.Department{Name: "Cardiology", IsActive: true})
	require.NoError(t, err)
	doctor, err := dir.CreateDoctor(ctx, directory.Doctor{
		UserID:       100,
		Specialty:    "Cardiologist",
		DepartmentID: dept.ID,
		IsAvailable:  true,
	})
	require.NoError(t, err)

	svc := NewService(NewMemoryRepository(), dir, notification.NewLoggerNotifier(logging.Discard()))
	return svc, dept, doctor
}

func TestBookConfirmsAppointment(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booked, err := svc.Book(ctx, BookInput{
		PatientID:    7,
		PatientPhone: "+11234567890",
		DoctorID:     doctor.ID,
		DepartmentID: dept.ID,
		Date:         date,
		TimeSlot:     "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, booked.Status)
	assert.Equal(t, int64(7), booked.PatientID)
	assert.NotZero(t, booked.ID)
}

func TestBookRejectsSlotClash(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	input := BookInput{
		PatientID:    7,
		DoctorID:     doctor.ID,
		DepartmentID: dept.ID,
		Date:         date,
		TimeSlot:     "10:30",
	}
	_, err := svc.Book(ctx, input)
	require.NoError(t, err)

	// Same doctor, same date, same slot for another patient clashes.
	input.PatientID = 8
	_, err = svc.Book(ctx, input)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)

	// A different slot on the same day is fine.
	input.TimeSlot = "11:00"
	_, err = svc.Book(ctx, input)
	assert.NoError(t, err)
}

func TestBookCancelledSlotReopens(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	input := BookInput{PatientID: 7, DoctorID: doctor.ID, DepartmentID: dept.ID, Date: date, TimeSlot: "10:30"}

	booked, err := svc.Book(ctx, input)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, booked.ID, 7, false))

	input.PatientID = 8
	_, err = svc.Book(ctx, input)
	assert.NoError(t, err)
}

func TestBookUnknownDepartment(t *testing.T) {
	svc, _, _ := testBookingService(t)
	ctx := context.Background()

	_, err := svc.Book(ctx, BookInput{
		PatientID:    7,
		DepartmentID: 999,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:30",
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestGetHidesOtherPatientsBookings(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	booked, err := svc.Book(ctx, BookInput{
		PatientID:    7,
		DoctorID:     doctor.ID,
		DepartmentID: dept.ID,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:30",
	})
	require.NoError(t, err)

	// The owner and admins can read it.
	_, err = svc.Get(ctx, booked.ID, 7, false)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, booked.ID, 99, true)
	assert.NoError(t, err)

	// Another patient sees a plain not-found, not a forbidden.
	_, err = svc.Get(ctx, booked.ID, 8, false)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestUpdateStatusValidatesState(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	booked, err := svc.Book(ctx, BookInput{
		PatientID:    7,
		DoctorID:     doctor.ID,
		DepartmentID: dept.ID,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:30",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, booked.ID, "rescheduled")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	updated, err := svc.UpdateStatus(ctx, booked.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestUpdateAppliesPartialEdit(t *testing.T) {
	svc, dept, doctor := testBookingService(t)
	ctx := context.Background()

	booked, err := svc.Book(ctx, BookInput{
		PatientID:    7,
		DoctorID:     doctor.ID,
		DepartmentID: dept.ID,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:30",
	})
	require.NoError(t, err)

	slot := "14:00"
	notes := "follow-up"
	updated, err := svc.Update(ctx, booked.ID, UpdateInput{TimeSlot: &slot, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.TimeSlot)
	assert.Equal(t, "follow-up", updated.Notes)
	// Untouched fields survive the edit.
	assert.Equal(t, dept.ID, updated.DepartmentID)
	assert.Equal(t, StatusConfirmed, updated.Status)

	badStatus := "rescheduled"
	_, err = svc.Update(ctx, booked.ID, UpdateInput{Status: &badStatus})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	badDept := int64(999)
	_, err = svc.Update(ctx, booked.ID, UpdateInput{DepartmentID: &badDept})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}
