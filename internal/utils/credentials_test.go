package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSaltUnique(t *testing.T) {
	h := NewHasher("test-secret")
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		s, err := h.GenerateSalt()
		require.NoError(t, err)
		require.Len(t, s, 32) // 16 random bytes, hex encoded
		require.False(t, seen[s], "salt repeated: %s", s)
		seen[s] = true
	}
}

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("test-secret")
	first := h.Hash("salt-a", "hunter2")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, h.Hash("salt-a", "hunter2"))
	}
}

func TestHashDistinctInputs(t *testing.T) {
	h := NewHasher("test-secret")

	require.NotEqual(t, h.Hash("salt-a", "hunter2"), h.Hash("salt-b", "hunter2"),
		"same password under different salts must hash differently")
	require.NotEqual(t, h.Hash("salt-a", "hunter2"), h.Hash("salt-a", "hunter3"),
		"different passwords under the same salt must hash differently")
}

func TestHashKeyedBySecret(t *testing.T) {
	a := NewHasher("secret-one")
	b := NewHasher("secret-two")
	require.NotEqual(t, a.Hash("salt", "hunter2"), b.Hash("salt", "hunter2"),
		"hashes from different process secrets must not match")
}

func TestVerify(t *testing.T) {
	h := NewHasher("test-secret")
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	stored := h.Hash(salt, "hunter2")

	require.True(t, h.Verify(salt, "hunter2", stored))
	require.False(t, h.Verify(salt, "hunter3", stored))
	require.False(t, h.Verify("other-salt", "hunter2", stored))
	require.False(t, h.Verify(salt, "hunter2", ""))
}
