package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

func testPhonePolicy() PhonePolicy {
	return PhonePolicy{MinDigits: 10, MaxDigits: 15, CountryCode: "+1"}
}

func TestPhoneValidateAccepts(t *testing.T) {
	policy := testPhonePolicy()

	for _, raw := range []string{
		"1234567890",
		"+12345678901",
		"123-456-7890",
		"(123) 456-7890",
		"123.456.7890",
		"+1 234 567 8901",
		"123456789012345",
	} {
		assert.NoError(t, policy.Validate(raw), "phone %q", raw)
	}
}

func TestPhoneValidateRejects(t *testing.T) {
	policy := testPhonePolicy()

	for _, raw := range []string{
		"",
		"123456789",        // too few digits
		"1234567890123456", // too many digits
		"12345abc90",
		"phone",
		"++12345678901",
		"123-456-789O", // letter O, not zero
	} {
		err := policy.Validate(raw)
		require.Error(t, err, "phone %q", raw)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Message, "10-15")
	}
}

func TestPhoneNormalize(t *testing.T) {
	policy := testPhonePolicy()

	cases := []struct {
		raw  string
		want string
	}{
		{"123-456-7890", "+11234567890"},
		{"(123) 456-7890", "+11234567890"},
		{"1234567890", "+11234567890"},
		{"12345678901", "+12345678901"}, // bare leading 1 dropped
		{"+12345678901", "+12345678901"},
		{"+44 20 7946 0958", "+442079460958"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Normalize(tc.raw), "raw %q", tc.raw)
	}
}

func TestPhoneNormalizeIdempotent(t *testing.T) {
	policy := testPhonePolicy()

	for _, raw := range []string{"123-456-7890", "12345678901", "+442079460958"} {
		once := policy.Normalize(raw)
		assert.Equal(t, once, policy.Normalize(once), "raw %q", raw)
	}
}
