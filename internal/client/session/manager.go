package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"
)

//go:generate moq -out refresher_mock.go . Refresher

// Refresher exchanges a refresh token for a new token pair. Implemented by
// the API client and injected after construction to avoid a dependency cycle.
// newRefreshToken is empty when the backend does not rotate the token.
type Refresher interface {
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
}

// Manager owns the session lifecycle: establishing a session after login,
// refreshing it when the backend reports 401, and broadcasting the
// auth-required signal when recovery is impossible.
//
// At most one refresh is in flight at any time. Concurrent callers share the
// pending exchange through a single-flight group; the in-flight marker is
// cleared before any new refresh can start, whatever the outcome.
type Manager struct {
	store     *Store
	events    *Broadcaster
	refresher Refresher
	sf        singleflight.Group
	log       *slog.Logger
}

// NewManager creates a session manager over the given store.
func NewManager(store *Store, events *Broadcaster, log *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		events: events,
		log:    log,
	}
}

// SetRefresher wires the token exchange implementation. Must be called before
// the first Refresh.
func (m *Manager) SetRefresher(r Refresher) {
	m.refresher = r
}

// Store exposes the underlying token store.
func (m *Manager) Store() *Store {
	return m.store
}

// Events exposes the auth-required broadcaster.
func (m *Manager) Events() *Broadcaster {
	return m.events
}

// IsAuthenticated reports whether an access token is currently held.
func (m *Manager) IsAuthenticated() bool {
	return m.store.AccessToken() != ""
}

// Establish stores the token pair returned by a successful login.
func (m *Manager) Establish(ctx context.Context, username, accessToken, refreshToken string) {
	m.store.SetUsername(username)
	m.store.SetAccessToken(accessToken)
	m.store.SetRefreshToken(ctx, refreshToken)
}

// Refresh exchanges the persisted refresh token for a new access token.
// Concurrent callers share exactly one underlying exchange and all receive
// the same result. Returns ("", nil) when no refresh token is stored.
// An exchange failure clears both tokens so the pair never falls out of
// sync, emits exactly one auth-required event however many callers are
// waiting, and is reported to every waiting caller as an error.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := m.sf.Do("refresh", func() (any, error) {
		refreshToken := m.store.RefreshToken(ctx)
		if refreshToken == "" {
			m.log.Debug("refresh skipped: no refresh token stored")
			return "", nil
		}

		if m.refresher == nil {
			return "", fmt.Errorf("session manager has no refresher configured")
		}

		m.log.Debug("refreshing access token")
		accessToken, newRefreshToken, err := m.refresher.ExchangeRefreshToken(ctx, refreshToken)
		if err != nil {
			m.Fail(ctx, http.StatusUnauthorized)
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}
		if accessToken == "" {
			m.Fail(ctx, http.StatusUnauthorized)
			return "", fmt.Errorf("refresh returned no access token")
		}

		m.store.SetAccessToken(accessToken)
		if newRefreshToken != "" {
			m.store.SetRefreshToken(ctx, newRefreshToken)
		}
		m.log.Debug("access token refreshed")
		return accessToken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// Fail terminates the session: both tokens are cleared and a single
// auth-required event carrying the originating status is emitted.
func (m *Manager) Fail(ctx context.Context, status int) {
	m.store.ClearTokens(ctx)
	m.events.Emit(AuthRequiredEvent{Status: status})
}
