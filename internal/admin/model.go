package admin

import "time"

// DashboardStats is the headline counter set shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers            int64     `json:"total_users"`
	ActiveUsers           int64     `json:"active_users"`
	TotalAppointments     int64     `json:"total_appointments"`
	ConfirmedAppointments int64     `json:"confirmed_appointments"`
	PendingAppointments   int64     `json:"pending_appointments"`
	PendingMessages       int64     `json:"pending_messages"`
	TotalDoctors          int64     `json:"total_doctors"`
	TotalDepartments      int64     `json:"total_departments"`
	TotalServices         int64     `json:"total_services"`
	MonthAppointments     int64     `json:"month_appointments"`
	WeekAppointments      int64     `json:"week_appointments"`
	Timestamp             time.Time `json:"timestamp"`
}

// AppointmentStats breaks appointments down by status plus a recent window.
type AppointmentStats struct {
	ByStatus   map[string]int64 `json:"by_status"`
	RecentDays int              `json:"recent_days"`
	Recent     int64            `json:"recent"`
	Timestamp  time.Time        `json:"timestamp"`
}

// UserStats breaks the user base down by role and activity.
type UserStats struct {
	TotalUsers   int64     `json:"total_users"`
	ActiveUsers  int64     `json:"active_users"`
	AdminUsers   int64     `json:"admin_users"`
	DoctorUsers  int64     `json:"doctor_users"`
	PatientUsers int64     `json:"patient_users"`
	Timestamp    time.Time `json:"timestamp"`
}

// MessageStats counts contact messages per status.
type MessageStats struct {
	ByStatus  map[string]int64 `json:"by_status"`
	Timestamp time.Time        `json:"timestamp"`
}
