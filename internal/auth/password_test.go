package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	h := testHasher()

	digest, err := h.Hash("Sup3rSecret!")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret!", digest)

	assert.True(t, h.Verify("Sup3rSecret!", digest))
	assert.False(t, h.Verify("Sup3rSecret?", digest))
	assert.False(t, h.Verify("", digest))
}

func TestPasswordHashUniqueSalts(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("Sup3rSecret!")
	require.NoError(t, err)
	second, err := h.Hash("Sup3rSecret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("Sup3rSecret!", first))
	assert.True(t, h.Verify("Sup3rSecret!", second))
}

func TestPasswordHashLongSecretTruncation(t *testing.T) {
	h := testHasher()

	long := strings.Repeat("a", 100)
	digest, err := h.Hash(long)
	require.NoError(t, err)

	// Hash and Verify truncate identically, so the full secret matches.
	assert.True(t, h.Verify(long, digest))
	// So does any secret sharing the first 72 bytes.
	assert.True(t, h.Verify(strings.Repeat("a", 72)+"different tail", digest))
	// A different prefix does not.
	assert.False(t, h.Verify("b"+strings.Repeat("a", 99), digest))
}

func TestPasswordHashMultibyteBoundary(t *testing.T) {
	h := testHasher()

	// 23 three-byte runes put a rune boundary straddling byte 72; the
	// partial rune must be dropped, not split.
	long := strings.Repeat("日本語", 8) // 72 bytes exactly
	boundary := "x" + long            // 73 bytes, rune straddles the cap

	digest, err := h.Hash(boundary)
	require.NoError(t, err)
	assert.True(t, h.Verify(boundary, digest))
}

func TestPasswordVerifyMalformedDigest(t *testing.T) {
	h := testHasher()

	assert.False(t, h.Verify("whatever", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("whatever", ""))
}

func TestNewPasswordHasherCostClamped(t *testing.T) {
	// Out-of-range costs fall back to the default rather than failing at
	// hash time.
	for _, cost := range []int{-1, 0, 3, 32, 100} {
		h := NewPasswordHasher(cost)
		assert.Equal(t, DefaultBcryptCost, h.cost, "cost %d", cost)
	}
}
