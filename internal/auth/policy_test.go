package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

func TestPasswordPolicyFirstUnmetRule(t *testing.T) {
	policy := PasswordPolicy{}

	cases := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Ab1", "password must be at least 8 characters long"},
		{"short even with all classes", "Ab1!", "password must be at least 8 characters long"},
		{"no uppercase", "abcdefg1", "password must contain at least one uppercase letter"},
		{"no lowercase", "ABCDEFG1", "password must contain at least one lowercase letter"},
		{"no digit", "Abcdefgh", "password must contain at least one digit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.password)
			require.Error(t, err)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestPasswordPolicyAccepts(t *testing.T) {
	policy := PasswordPolicy{}

	assert.NoError(t, policy.Validate("Abcdefg1"))
	assert.NoError(t, policy.Validate("Sup3rSecret"))
	// Special characters are allowed even when not required.
	assert.NoError(t, policy.Validate("Sup3rSecret!"))
}

func TestPasswordPolicySpecialToggle(t *testing.T) {
	strict := PasswordPolicy{RequireSpecial: true}

	err := strict.Validate("Abcdefg1")
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "password must contain at least one special character", appErr.Message)

	assert.NoError(t, strict.Validate("Abcdefg1!"))
	assert.NoError(t, strict.Validate(`Abcdefg1"`))
}
