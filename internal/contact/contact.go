package contact

import "time"

// Message statuses.
const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusResolved = "resolved"
)

// ValidStatus reports whether s is a recognized message status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusResolved:
		return true
	default:
		return false
	}
}

// Message is a contact-form submission from a patient or visitor.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows message listings.
type Filter struct {
	Status string
	Email  string
	Limit  int
	Offset int
}
