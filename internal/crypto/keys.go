package crypto

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for stretching the local seed into the storage key.
const (
	// Argon2Time is the number of iterations (time cost)
	Argon2Time = 1
	// Argon2Memory is the memory cost in KB (64MB)
	Argon2Memory = 64 * 1024
	// Argon2Threads is the degree of parallelism
	Argon2Threads = 4
	// SeedSize is the size of the locally stored key seed in bytes
	SeedSize = 32
)

// storageKeyContext separates the storage key from any other key
// that might be derived from the same seed later.
var storageKeyContext = []byte("ocr-frontend.token-vault.v1")

// LoadOrCreateSeed reads the local key seed file, generating it with
// 0600 permissions on first run. The seed never leaves the machine.
func LoadOrCreateSeed(path string) ([]byte, error) {
	seed, err := os.ReadFile(path)
	if err == nil {
		if len(seed) != SeedSize {
			return nil, fmt.Errorf("key seed file %s is corrupted: expected %d bytes, got %d", path, SeedSize, len(seed))
		}
		return seed, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key seed: %w", err)
	}

	seed = make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to generate key seed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create key seed directory: %w", err)
	}
	if err := os.WriteFile(path, seed, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write key seed: %w", err)
	}

	return seed, nil
}

// DeriveStorageKey stretches the seed into the 32-byte key used to
// encrypt the refresh token at rest.
func DeriveStorageKey(seed []byte) []byte {
	return argon2.IDKey(seed, storageKeyContext, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
}
