package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dereksuun/ocr-frontend/internal/client/storage"
	"github.com/dereksuun/ocr-frontend/internal/crypto"
)

// Vault persists the refresh token encrypted at rest. It sits between the
// token store and the raw storage layer: plaintext above, AES-GCM ciphertext
// below. The access token never passes through here.
type Vault struct {
	storage storage.AuthStorage
	key     []byte
}

// NewVault creates a vault over the given storage.
// key must be exactly 32 bytes (derived from the local key seed).
func NewVault(authStorage storage.AuthStorage, key []byte) *Vault {
	if len(key) != crypto.KeySize {
		panic(fmt.Sprintf("vault key must be %d bytes, got %d", crypto.KeySize, len(key)))
	}
	return &Vault{
		storage: authStorage,
		key:     key,
	}
}

// Save encrypts and stores the refresh token together with the username.
func (v *Vault) Save(ctx context.Context, username, refreshToken string) error {
	encrypted, err := crypto.EncryptToBase64([]byte(refreshToken), v.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	auth := &storage.AuthData{
		Username:     username,
		RefreshToken: encrypted,
		UpdatedAt:    time.Now().Unix(),
	}
	if err := v.storage.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	return nil
}

// Load retrieves and decrypts the stored session record.
// Returns storage.ErrAuthNotFound when no record exists.
func (v *Vault) Load(ctx context.Context) (*storage.AuthData, error) {
	stored, err := v.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.DecryptFromBase64(stored.RefreshToken, v.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	auth := *stored
	auth.RefreshToken = string(plaintext)
	return &auth, nil
}

// Delete removes the stored session record.
func (v *Vault) Delete(ctx context.Context) error {
	return v.storage.DeleteAuth(ctx)
}
