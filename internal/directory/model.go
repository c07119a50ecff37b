package directory

import "time"

// Department groups doctors and appointments under a clinical specialty area.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Doctor is a clinician profile linked to an identity and a department.
type Doctor struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	FullName        string    `json:"full_name,omitempty"`
	Specialty       string    `json:"specialty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears int       `json:"experience_years,omitempty"`
	DepartmentID    int64     `json:"department_id"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	DepartmentID  int64
	Specialty     string
	AvailableOnly bool
}
