package identity

import "time"

// User is the identity record backing authentication. The Phone field always
// holds the canonical, country-code-prefixed form.
type User struct {
	ID           int64
	Phone        string
	PasswordHash string
	FullName     string
	Email        string
	IsActive     bool
	IsAdmin      bool
	IsDoctor     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
