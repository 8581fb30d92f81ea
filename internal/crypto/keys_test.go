package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "client.seed")

	seed, err := LoadOrCreateSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed, SeedSize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second load returns the same seed.
	again, err := LoadOrCreateSeed(path)
	require.NoError(t, err)
	assert.Equal(t, seed, again)
}

func TestLoadOrCreateSeed_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.seed")
	require.NoError(t, os.WriteFile(path, []byte("tiny"), 0o600))

	_, err := LoadOrCreateSeed(path)
	assert.Error(t, err)
}

func TestDeriveStorageKey(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}

	key := DeriveStorageKey(seed)
	assert.Len(t, key, KeySize)

	// Deterministic for the same seed, different for a different seed.
	assert.Equal(t, key, DeriveStorageKey(seed))

	other := make([]byte, SeedSize)
	assert.NotEqual(t, key, DeriveStorageKey(other))
}
