package session

import (
	"context"
	"log/slog"
	"sync"
)

// Store is the single source of truth for the credential pair.
// The access token lives only in memory and dies with the process; the
// refresh token is persisted through the vault. Storage failures never
// propagate out of the store; it degrades to "no refresh token".
type Store struct {
	mu          sync.Mutex
	accessToken string
	username    string
	nextSubID   int
	subs        map[int]func(string)
	vault       *Vault
	log         *slog.Logger
}

// NewStore creates a token store backed by the given vault.
func NewStore(vault *Vault, log *slog.Logger) *Store {
	return &Store{
		subs:  make(map[int]func(string)),
		vault: vault,
		log:   log,
	}
}

// AccessToken returns the current in-memory access token, or "" when absent.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// SetAccessToken replaces the in-memory access token and synchronously
// notifies every subscriber with the new value before returning.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	listeners := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(token)
	}
}

// SubscribeAccessToken registers a listener invoked on every future
// SetAccessToken call. Past values are not replayed. The returned function
// removes the subscription.
func (s *Store) SubscribeAccessToken(fn func(token string)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetUsername records the account name the session belongs to.
func (s *Store) SetUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// Username returns the account name, falling back to the persisted record.
func (s *Store) Username(ctx context.Context) string {
	s.mu.Lock()
	name := s.username
	s.mu.Unlock()
	if name != "" {
		return name
	}

	auth, err := s.vault.Load(ctx)
	if err != nil {
		return ""
	}
	return auth.Username
}

// RefreshToken reads the persisted refresh token, or "" when absent or
// when storage is unavailable.
func (s *Store) RefreshToken(ctx context.Context) string {
	auth, err := s.vault.Load(ctx)
	if err != nil {
		s.log.Debug("no usable refresh token in storage", "error", err)
		return ""
	}
	return auth.RefreshToken
}

// SetRefreshToken persists the refresh token; an empty value removes the
// stored record.
func (s *Store) SetRefreshToken(ctx context.Context, token string) {
	if token == "" {
		if err := s.vault.Delete(ctx); err != nil {
			s.log.Debug("failed to delete refresh token", "error", err)
		}
		return
	}

	s.mu.Lock()
	username := s.username
	s.mu.Unlock()

	if err := s.vault.Save(ctx, username, token); err != nil {
		s.log.Debug("failed to persist refresh token", "error", err)
	}
}

// ClearTokens drops both credentials as one logical operation. Subscribers
// observe a single notification with the empty value.
func (s *Store) ClearTokens(ctx context.Context) {
	s.SetAccessToken("")
	s.SetRefreshToken(ctx, "")
}
