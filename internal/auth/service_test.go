package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/identity"
)

func testService() (*Service, identity.Repository) {
	repo := identity.NewMemoryRepository()
	svc := NewService(
		repo,
		NewPasswordHasher(bcrypt.MinCost),
		testTokenService(),
		testPhonePolicy(),
		PasswordPolicy{},
	)
	return svc, repo
}

func TestRegisterStoresCanonicalPhone(t *testing.T) {
	svc, repo := testService()
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, RegisterInput{
		Phone:    "123-456-7890",
		Password: "Sup3rSecret",
		FullName: "Amina Diallo",
		Email:    "amina@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "+11234567890", user.Phone)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, int64((30 * time.Minute).Seconds()), pair.ExpiresIn)

	// The stored hash is never the plaintext.
	stored, err := repo.FindByPhone(ctx, "+11234567890")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
}

func TestRegisterDuplicatePhoneConflicts(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Different formatting of the same number collides on the canonical form.
	_, _, err = svc.Register(ctx, RegisterInput{Phone: "(123) 456-7890", Password: "Sup3rSecret"})
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Phone: "12345", Password: "Sup3rSecret"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	_, _, err = svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "weak"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Unknown phone and wrong password are indistinguishable.
	_, _, unknownErr := svc.Login(ctx, "9876543210", "Sup3rSecret")
	_, _, wrongErr := svc.Login(ctx, "1234567890", "WrongSecret1")
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	var unknownApp, wrongApp *apperr.Error
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, apperr.KindAuthentication, unknownApp.Kind)
	assert.Equal(t, apperr.KindAuthentication, wrongApp.Kind)
}

func TestLoginAcceptsAnyFormatting(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Phone: "123-456-7890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	for _, phone := range []string{"1234567890", "(123) 456-7890", "+11234567890", "11234567890"} {
		user, pair, err := svc.Login(ctx, phone, "Sup3rSecret")
		require.NoError(t, err, "phone %q", phone)
		assert.Equal(t, "+11234567890", user.Phone)
		assert.NotEmpty(t, pair.AccessToken)
	}
}

func TestRefreshCycle(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	access, expiresIn, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64((30 * time.Minute).Seconds()), expiresIn)

	// The new access token authenticates the same user.
	resolved, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// An access token cannot be used to refresh.
	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)
	assert.Equal(t, "invalid or expired token", appErr.Message)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, pair.RefreshToken)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)
}

func TestChangePasswordFlow(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{Phone: "1234567890", Password: "Sup3rSecret"})
	require.NoError(t, err)

	// Mismatched confirmation.
	err = svc.ChangePassword(ctx, user.ID, "Sup3rSecret", "NewSecret1", "Different1")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	// Weak replacement.
	err = svc.ChangePassword(ctx, user.ID, "Sup3rSecret", "weak", "weak")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	// Wrong current password.
	err = svc.ChangePassword(ctx, user.ID, "WrongSecret1", "NewSecret1", "NewSecret1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)

	// Success: the old credential stops working, the new one logs in.
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Sup3rSecret", "NewSecret1", "NewSecret1"))

	_, _, err = svc.Login(ctx, "1234567890", "Sup3rSecret")
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "1234567890", "NewSecret1")
	assert.NoError(t, err)
}

func TestInactiveUserLockedOut(t *testing.T) {
	repo := identity.NewMemoryRepository()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	svc := NewService(repo, hasher, testTokenService(), testPhonePolicy(), PasswordPolicy{})
	ctx := context.Background()

	hash, err := hasher.Hash("Sup3rSecret")
	require.NoError(t, err)
	user, err := repo.Create(ctx, identity.User{
		Phone:        "+11234567890",
		PasswordHash: hash,
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "1234567890", "Sup3rSecret")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)

	// Tokens issued before deactivation stop working too.
	access, err := testTokenService().IssueAccess(user.ID, user.Phone)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, access)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)

	refresh, err := testTokenService().IssueRefresh(user.ID, user.Phone)
	require.NoError(t, err)
	_, _, err = svc.Refresh(ctx, refresh)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthentication, appErr.Kind)
}

func TestRequireAdmin(t *testing.T) {
	svc, _ := testService()

	err := svc.RequireAdmin(identity.User{IsAdmin: false})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthorization, appErr.Kind)

	assert.NoError(t, svc.RequireAdmin(identity.User{IsAdmin: true}))
}
