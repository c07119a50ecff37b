package auth

import (
	"context"
	"time"

	"github.com/shifa-care/shifa_api/internal/apperr"
	"github.com/shifa-care/shifa_api/internal/identity"
)

const invalidCredentialsMessage = "invalid phone number or password"

// Service is the authentication core: it validates credentials, hashes
// secrets, and drives the token lifecycle. Persistence is reached only
// through the identity.Repository contract.
type Service struct {
	users     identity.Repository
	hasher    *PasswordHasher
	tokens    *TokenService
	phones    PhonePolicy
	passwords PasswordPolicy
}

// NewService wires the auth core from its three collaborating pieces.
func NewService(users identity.Repository, hasher *PasswordHasher, tokens *TokenService, phones PhonePolicy, passwords PasswordPolicy) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, phones: phones, passwords: passwords}
}

// TokenPair is the credential set returned by register and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterInput carries registration data. Name and email are optional.
type RegisterInput struct {
	Phone    string
	Password string
	FullName string
	Email    string
}

// Register validates the phone and password, stores the identity with a
// hashed credential, and returns a fresh token pair. Duplicate canonical
// phones surface as a conflict from the repository's uniqueness constraint.
func (s *Service) Register(ctx context.Context, input RegisterInput) (identity.User, TokenPair, error) {
	if err := s.phones.Validate(input.Phone); err != nil {
		return identity.User{}, TokenPair{}, err
	}
	if err := s.passwords.Validate(input.Password); err != nil {
		return identity.User{}, TokenPair{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return identity.User{}, TokenPair{}, apperr.Internal("hash password").WithCause(err)
	}

	user, err := s.users.Create(ctx, identity.User{
		Phone:        s.phones.Normalize(input.Phone),
		PasswordHash: hash,
		FullName:     input.FullName,
		Email:        input.Email,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return identity.User{}, TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return identity.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// Login verifies the credentials against the stored hash and returns a token
// pair. Unknown phone and wrong password produce the same error so login
// cannot be used to probe for registered numbers.
func (s *Service) Login(ctx context.Context, phone, password string) (identity.User, TokenPair, error) {
	user, err := s.users.FindByPhone(ctx, s.phones.Normalize(phone))
	if err != nil {
		return identity.User{}, TokenPair{}, apperr.Authentication(invalidCredentialsMessage).WithCause(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return identity.User{}, TokenPair{}, apperr.Authentication(invalidCredentialsMessage)
	}

	if !user.IsActive {
		return identity.User{}, TokenPair{}, apperr.Authentication("user account is inactive")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return identity.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh verifies the refresh token, re-resolves the identity, re-checks the
// active flag, and returns a brand-new access token. The refresh token itself
// is neither rotated nor invalidated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := s.tokens.Verify(refreshToken, KindRefresh)
	if err != nil {
		return "", 0, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", 0, apperr.Authentication(invalidTokenMessage).WithCause(err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", 0, apperr.Authentication("user not found or inactive").WithCause(err)
	}
	if !user.IsActive {
		return "", 0, apperr.Authentication("user not found or inactive")
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Phone)
	if err != nil {
		return "", 0, apperr.Internal("issue access token").WithCause(err)
	}
	return access, int64(s.tokens.AccessTTL().Seconds()), nil
}

// ChangePassword verifies the old password, checks the new one against
// policy, and replaces the stored hash atomically.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperr.Validation("new passwords do not match")
	}
	if err := s.passwords.Validate(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Authentication("user not found").WithCause(err)
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return apperr.Authentication("invalid current password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("hash password").WithCause(err)
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// Authenticate resolves the identity behind an access token. It fails when
// the token is invalid, the identity is gone, or the account was disabled
// after the token was issued.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (identity.User, error) {
	claims, err := s.tokens.Verify(accessToken, KindAccess)
	if err != nil {
		return identity.User{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return identity.User{}, apperr.Authentication(invalidTokenMessage).WithCause(err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return identity.User{}, apperr.Authentication("user not found").WithCause(err)
	}
	if !user.IsActive {
		return identity.User{}, apperr.Authentication("user account is inactive")
	}
	return user, nil
}

// RequireAdmin gates administrative operations. It assumes the user already
// passed Authenticate.
func (s *Service) RequireAdmin(user identity.User) error {
	if !user.IsAdmin {
		return apperr.Authorization("admin access required")
	}
	return nil
}

func (s *Service) issuePair(user identity.User) (TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Phone)
	if err != nil {
		return TokenPair{}, apperr.Internal("issue access token").WithCause(err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Phone)
	if err != nil {
		return TokenPair{}, apperr.Internal("issue refresh token").WithCause(err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
