package auth

import (
	"strings"
	"unicode"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

const passwordMinLength = 8

const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy enforces password strength at registration and password
// change. RequireSpecial is an explicit toggle because deployments disagree
// on whether a special character should be mandatory.
type PasswordPolicy struct {
	RequireSpecial bool
}

// Validate returns the first unmet rule, not the full set of violations.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < passwordMinLength {
		return apperr.Validation("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return apperr.Validation("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return apperr.Validation("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return apperr.Validation("password must contain at least one digit")
	}

	if p.RequireSpecial && !strings.ContainsAny(password, specialChars) {
		return apperr.Validation("password must contain at least one special character")
	}

	return nil
}
