package session

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dereksuun/ocr-frontend/internal/client/storage"
)

// mockAuthStorage implements storage.AuthStorage for testing
type mockAuthStorage struct {
	data      *storage.AuthData
	saveErr   error
	getErr    error
	deleteErr error
}

func (m *mockAuthStorage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *auth
	m.data = &cp
	return nil
}

func (m *mockAuthStorage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, storage.ErrAuthNotFound
	}
	cp := *m.data
	return &cp, nil
}

func (m *mockAuthStorage) DeleteAuth(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.data = nil
	return nil
}

func testVaultKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

func newTestStore(st storage.AuthStorage) *Store {
	return NewStore(NewVault(st, testVaultKey()), slog.Default())
}

func TestNewVault_PanicOnInvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		NewVault(&mockAuthStorage{}, make([]byte, 16))
	})
}

func TestVault_RoundTrip(t *testing.T) {
	mockStorage := &mockAuthStorage{}
	vault := NewVault(mockStorage, testVaultKey())
	ctx := context.Background()

	require.NoError(t, vault.Save(ctx, "alice", "refresh-token-plaintext"))

	// Ciphertext lands in storage, not the plaintext.
	require.NotNil(t, mockStorage.data)
	assert.NotEqual(t, "refresh-token-plaintext", mockStorage.data.RefreshToken)
	assert.Equal(t, "alice", mockStorage.data.Username)

	auth, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-plaintext", auth.RefreshToken)
	assert.Equal(t, "alice", auth.Username)

	require.NoError(t, vault.Delete(ctx))
	_, err = vault.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestStore_AccessToken(t *testing.T) {
	store := newTestStore(&mockAuthStorage{})

	assert.Empty(t, store.AccessToken())

	store.SetAccessToken("token-1")
	assert.Equal(t, "token-1", store.AccessToken())
}

func TestStore_SubscribeAccessToken(t *testing.T) {
	store := newTestStore(&mockAuthStorage{})

	var got []string
	unsubscribe := store.SubscribeAccessToken(func(token string) {
		got = append(got, token)
	})

	// Subscribing does not replay the current value.
	assert.Empty(t, got)

	store.SetAccessToken("token-1")
	store.SetAccessToken("")
	assert.Equal(t, []string{"token-1", ""}, got)

	unsubscribe()
	store.SetAccessToken("token-2")
	assert.Equal(t, []string{"token-1", ""}, got)
}

func TestStore_ClearTokens(t *testing.T) {
	store := newTestStore(&mockAuthStorage{})
	ctx := context.Background()

	store.SetUsername("alice")
	store.SetAccessToken("access")
	store.SetRefreshToken(ctx, "refresh")
	require.Equal(t, "refresh", store.RefreshToken(ctx))

	notifications := 0
	store.SubscribeAccessToken(func(token string) {
		notifications++
		assert.Empty(t, token)
	})

	store.ClearTokens(ctx)

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken(ctx))
	// Exactly one notification for the pair being dropped.
	assert.Equal(t, 1, notifications)
}

func TestStore_StorageFailuresSwallowed(t *testing.T) {
	broken := &mockAuthStorage{
		saveErr:   fmt.Errorf("disk full"),
		getErr:    fmt.Errorf("disk on fire"),
		deleteErr: fmt.Errorf("disk gone"),
	}
	store := newTestStore(broken)
	ctx := context.Background()

	// None of these may panic or propagate errors.
	store.SetRefreshToken(ctx, "refresh")
	assert.Empty(t, store.RefreshToken(ctx))
	store.ClearTokens(ctx)
}

func TestStore_Username_FallsBackToVault(t *testing.T) {
	mockStorage := &mockAuthStorage{}
	store := newTestStore(mockStorage)
	ctx := context.Background()

	assert.Empty(t, store.Username(ctx))

	store.SetUsername("alice")
	store.SetRefreshToken(ctx, "refresh")

	// A fresh store over the same storage recovers the username from disk.
	restored := newTestStore(mockStorage)
	assert.Equal(t, "alice", restored.Username(ctx))
}
