// Package validate wraps go-playground/validator for request DTOs outside
// the auth core. Phone and password rules live in the auth policies instead.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its struct tags and translates the first
// violation into a validation error.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("invalid request").WithCause(err)
	}

	fe := fieldErrs[0]
	return apperr.Validation(formatFieldError(fe)).WithCause(err)
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
