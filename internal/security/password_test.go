package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(10)
	ctx := context.Background()

	for _, password := range []string{"secret1", "a-much-longer-password-with-entropy", "p@ssw0rd!"} {
		digest, err := h.Hash(ctx, password)
		require.NoError(t, err)

		assert.NotEqual(t, password, digest)
		assert.True(t, h.Verify(password, digest))
		assert.False(t, h.Verify(password+"x", digest))
	}
}

func TestPasswordHasher_SaltedDigests(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(10)
	ctx := context.Background()

	first, err := h.Hash(ctx, "secret1")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "secret1")
	require.NoError(t, err)

	// Random salt: same plaintext, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}

func TestPasswordHasher_MinimumCost(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(4)
	assert.Equal(t, 10, h.cost)
}

func TestPasswordHasher_VerifyGarbageDigest(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(10)
	assert.False(t, h.Verify("anything", "not-a-bcrypt-digest"))
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "secret1")
	assert.Error(t, err)
}
