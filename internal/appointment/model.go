package appointment

import "time"

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no-show"
)

// ValidStatus reports whether s is a recognized appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Appointment is a patient booking against a department and optionally a
// specific doctor.
type Appointment struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	DoctorID     int64     `json:"doctor_id,omitempty"`
	DepartmentID int64     `json:"department_id"`
	Date         time.Time `json:"appointment_date"`
	TimeSlot     string    `json:"appointment_time"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows appointment listings.
type Filter struct {
	PatientID int64
	DoctorID  int64
	Status    string
	Limit     int
	Offset    int
}
