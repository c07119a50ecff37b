package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shifa-care/shifa_api/internal/apperr"
)

// TokenKind tags a token's purpose inside its claims.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the JWT payload for both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	Phone string `json:"phone"`
	Kind  string `json:"kind"`
}

// UserID parses the subject claim back into the numeric user id.
func (c Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// invalidTokenMessage is deliberately uniform: expiry, forgery, and kind
// mismatch must be indistinguishable to the caller.
const invalidTokenMessage = "invalid or expired token"

var errKindMismatch = errors.New("token kind mismatch")

// TokenService issues and verifies HS256-signed access and refresh tokens.
// Tokens are stateless: nothing is persisted and nothing can be revoked
// before expiry.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a token service from an explicit secret and TTL pair.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL exposes the configured access-token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// IssueAccess mints a short-lived access token for the user.
func (s *TokenService) IssueAccess(userID int64, phone string) (string, error) {
	return s.issue(userID, phone, KindAccess, s.accessTTL)
}

// IssueRefresh mints a longer-lived refresh token for the user.
func (s *TokenService) IssueRefresh(userID int64, phone string) (string, error) {
	return s.issue(userID, phone, KindRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID int64, phone string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Phone: phone,
		Kind:  string(kind),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify validates the signature and expiry, then the embedded kind tag. Any
// failure maps to an authentication error with the uniform message; the
// underlying cause stays wrapped for internal diagnostics.
func (s *TokenService) Verify(token string, expected TokenKind) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, apperr.Authentication(invalidTokenMessage).WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, apperr.Authentication(invalidTokenMessage)
	}
	if claims.Kind != string(expected) {
		return Claims{}, apperr.Authentication(invalidTokenMessage).WithCause(errKindMismatch)
	}
	return claims, nil
}
