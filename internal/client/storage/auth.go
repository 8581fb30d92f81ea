package storage

import (
	"context"
)

// AuthStorage defines the durable client-side store for session credentials.
// This is the lowest storage layer: it persists records as-is (the refresh
// token arrives already encrypted) and performs no crypto itself.
// The access token is deliberately absent: it lives only in process memory.
type AuthStorage interface {
	// SaveAuth stores the auth record, replacing any previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored auth record.
	// Returns ErrAuthNotFound if no record exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored auth record (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData is the persisted session record.
// RefreshToken is base64-encoded ciphertext in storage; the plaintext
// only exists above the session vault layer.
type AuthData struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
	UpdatedAt    int64  `json:"updated_at"`
}
