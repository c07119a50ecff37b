package auth

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the production work factor. Tests inject a lower cost.
const DefaultBcryptCost = 12

// bcryptMaxBytes is the byte ceiling bcrypt applies to its input.
const bcryptMaxBytes = 72

// PasswordHasher wraps bcrypt with a defined truncation rule for secrets
// whose UTF-8 encoding exceeds the 72-byte bcrypt limit. Hash and Verify
// apply the identical truncation, otherwise long passwords would hash and
// verify against different prefixes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher with the given bcrypt cost. Costs outside
// the bcrypt range fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of the secret.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncateSecret(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. Malformed digests and
// algorithm mismatches report false rather than an error.
func (h *PasswordHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncateSecret(secret)) == nil
}

// truncateSecret caps the secret at 72 bytes, discarding any trailing partial
// multi-byte rune so the prefix stays valid UTF-8.
func truncateSecret(secret string) []byte {
	b := []byte(secret)
	if len(b) <= bcryptMaxBytes {
		return b
	}
	cut := bcryptMaxBytes
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}
