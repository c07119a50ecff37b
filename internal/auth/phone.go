package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// PhonePolicy validates and canonicalizes phone numbers. The canonical form
// is the uniqueness key for identities, so every lookup must go through
// Normalize first.
type PhonePolicy struct {
	MinDigits   int
	MaxDigits   int
	CountryCode string
}

var (
	phoneSeparators = regexp.MustCompile(`[\s\-\(\)\.]+`)
	phonePattern    = regexp.MustCompile(`^\+?\d{10,15}$`)
	nonPhoneChars   = regexp.MustCompile(`[^\d\+]`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// Validate checks that raw is a plausible phone number once common separator
// characters are stripped.
func (p PhonePolicy) Validate(raw string) error {
	cleaned := phoneSeparators.ReplaceAllString(raw, "")

	if !phonePattern.MatchString(cleaned) {
		return apperr.Validation(fmt.Sprintf("invalid phone number format, must be %d-%d digits", p.MinDigits, p.MaxDigits))
	}

	digits := nonDigits.ReplaceAllString(cleaned, "")
	if len(digits) < p.MinDigits || len(digits) > p.MaxDigits {
		return apperr.Validation(fmt.Sprintf("phone number must be %d-%d digits", p.MinDigits, p.MaxDigits))
	}

	return nil
}

// Normalize canonicalizes a phone number to a single international form.
// A bare 11-digit number with a leading 1 loses that 1 before the default
// country code is prepended. Normalize is idempotent.
func (p PhonePolicy) Normalize(raw string) string {
	cleaned := nonPhoneChars.ReplaceAllString(raw, "")

	if !strings.HasPrefix(cleaned, "+") {
		if strings.HasPrefix(cleaned, "1") && len(cleaned) == 11 {
			cleaned = cleaned[1:]
		}
		cleaned = p.CountryCode + cleaned
	}

	return cleaned
}
