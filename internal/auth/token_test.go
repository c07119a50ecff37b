package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

func testTokenService() *TokenService {
	return NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestTokenIssueAndVerify(t *testing.T) {
	svc := testTokenService()

	access, err := svc.IssueAccess(42, "+11234567890")
	require.NoError(t, err)

	claims, err := svc.Verify(access, KindAccess)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "+11234567890", claims.Phone)
	assert.Equal(t, string(KindAccess), claims.Kind)
}

func TestTokenKindMismatch(t *testing.T) {
	svc := testTokenService()

	access, err := svc.IssueAccess(1, "+11234567890")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh(1, "+11234567890")
	require.NoError(t, err)

	// An access token is not accepted where a refresh token is expected,
	// and vice versa. Both failures use the uniform message.
	for _, tc := range []struct {
		token    string
		expected TokenKind
	}{
		{access, KindRefresh},
		{refresh, KindAccess},
	} {
		_, err := svc.Verify(tc.token, tc.expected)
		require.Error(t, err)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindAuthentication, appErr.Kind)
		assert.Equal(t, "invalid or expired token", appErr.Message)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, -time.Minute)

	access, err := svc.IssueAccess(1, "+11234567890")
	require.NoError(t, err)

	_, err = svc.Verify(access, KindAccess)
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid or expired token", appErr.Message)
}

func TestTokenWrongSecret(t *testing.T) {
	access, err := testTokenService().IssueAccess(1, "+11234567890")
	require.NoError(t, err)

	other := NewTokenService("other-secret", 30*time.Minute, 7*24*time.Hour)
	_, err = other.Verify(access, KindAccess)
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid or expired token", appErr.Message)
}

func TestTokenTampered(t *testing.T) {
	svc := testTokenService()

	access, err := svc.IssueAccess(1, "+11234567890")
	require.NoError(t, err)

	tampered := access[:len(access)-2] + "xx"
	_, err = svc.Verify(tampered, KindAccess)
	assert.Error(t, err)

	_, err = svc.Verify("not.a.jwt", KindAccess)
	assert.Error(t, err)
}
