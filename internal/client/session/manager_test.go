package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRefresher implements Refresher for testing
type mockRefresher struct {
	calls        atomic.Int64
	accessToken  string
	refreshToken string
	err          error
	delay        time.Duration
}

func (m *mockRefresher) ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return "", "", m.err
	}
	return m.accessToken, m.refreshToken, nil
}

func newTestManager(t *testing.T, refresher Refresher) (*Manager, *mockAuthStorage) {
	t.Helper()

	mockStorage := &mockAuthStorage{}
	store := newTestStore(mockStorage)
	mgr := NewManager(store, NewBroadcaster(), slog.Default())
	if refresher != nil {
		mgr.SetRefresher(refresher)
	}
	return mgr, mockStorage
}

func TestManager_Establish(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	ctx := context.Background()

	assert.False(t, mgr.IsAuthenticated())

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	assert.True(t, mgr.IsAuthenticated())
	assert.Equal(t, "access-1", mgr.Store().AccessToken())
	assert.Equal(t, "refresh-1", mgr.Store().RefreshToken(ctx))
	assert.Equal(t, "alice", mgr.Store().Username(ctx))
}

func TestManager_Refresh_NoToken(t *testing.T) {
	refresher := &mockRefresher{accessToken: "unused"}
	mgr, _ := newTestManager(t, refresher)

	// No refresh token stored: nil result, not an error, no exchange issued.
	token, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, int64(0), refresher.calls.Load())
}

func TestManager_Refresh_Success(t *testing.T) {
	refresher := &mockRefresher{accessToken: "access-2"}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	token, err := mgr.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, "access-2", mgr.Store().AccessToken())
	// Backend did not rotate: the old refresh token is kept.
	assert.Equal(t, "refresh-1", mgr.Store().RefreshToken(ctx))
}

func TestManager_Refresh_RotatesRefreshToken(t *testing.T) {
	refresher := &mockRefresher{accessToken: "access-2", refreshToken: "refresh-2"}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	_, err := mgr.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", mgr.Store().RefreshToken(ctx))
}

func TestManager_Refresh_FailureClearsBothTokens(t *testing.T) {
	refresher := &mockRefresher{err: fmt.Errorf("server error (401): invalid refresh token")}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	var events []AuthRequiredEvent
	mgr.Events().Subscribe(func(ev AuthRequiredEvent) {
		events = append(events, ev)
	})

	_, err := mgr.Refresh(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to refresh token")

	// Never a half-cleared pair, and exactly one event.
	assert.Empty(t, mgr.Store().AccessToken())
	assert.Empty(t, mgr.Store().RefreshToken(ctx))
	require.Len(t, events, 1)
	assert.Equal(t, 401, events[0].Status)
}

func TestManager_Refresh_EmptyAccessTokenTreatedAsFailure(t *testing.T) {
	refresher := &mockRefresher{accessToken: ""}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	_, err := mgr.Refresh(ctx)
	require.Error(t, err)
	assert.Empty(t, mgr.Store().AccessToken())
	assert.Empty(t, mgr.Store().RefreshToken(ctx))
}

func TestManager_Refresh_ConcurrentFailureEmitsOneEvent(t *testing.T) {
	refresher := &mockRefresher{err: fmt.Errorf("invalid refresh token"), delay: 50 * time.Millisecond}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	var mu sync.Mutex
	var events []AuthRequiredEvent
	mgr.Events().Subscribe(func(ev AuthRequiredEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	const concurrent = 10
	var wg sync.WaitGroup
	errs := make([]error, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = mgr.Refresh(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), refresher.calls.Load())
	for i := 0; i < concurrent; i++ {
		require.Error(t, errs[i])
	}
	require.Len(t, events, 1)
	assert.Equal(t, 401, events[0].Status)
}

func TestManager_Refresh_SingleFlight(t *testing.T) {
	refresher := &mockRefresher{accessToken: "access-2", delay: 50 * time.Millisecond}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	const concurrent = 10
	var wg sync.WaitGroup
	tokens := make([]string, concurrent)
	errs := make([]error, concurrent)

	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = mgr.Refresh(ctx)
		}(i)
	}
	wg.Wait()

	// Exactly one exchange, every caller sees the same new token.
	assert.Equal(t, int64(1), refresher.calls.Load())
	for i := 0; i < concurrent; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "access-2", tokens[i])
	}
}

func TestManager_Refresh_NewFlightAfterCompletion(t *testing.T) {
	refresher := &mockRefresher{accessToken: "access-2"}
	mgr, _ := newTestManager(t, refresher)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	_, err := mgr.Refresh(ctx)
	require.NoError(t, err)
	_, err = mgr.Refresh(ctx)
	require.NoError(t, err)

	// The in-flight marker is cleared after each cycle.
	assert.Equal(t, int64(2), refresher.calls.Load())
}

func TestManager_Fail(t *testing.T) {
	mgr, _ := newTestManager(t, nil)
	ctx := context.Background()

	mgr.Establish(ctx, "alice", "access-1", "refresh-1")

	var events []AuthRequiredEvent
	mgr.Events().Subscribe(func(ev AuthRequiredEvent) {
		events = append(events, ev)
	})

	mgr.Fail(ctx, 401)

	assert.Empty(t, mgr.Store().AccessToken())
	assert.Empty(t, mgr.Store().RefreshToken(ctx))
	require.Len(t, events, 1)
	assert.Equal(t, 401, events[0].Status)
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	var first, second int
	unsubFirst := b.Subscribe(func(AuthRequiredEvent) { first++ })
	b.Subscribe(func(AuthRequiredEvent) { second++ })

	b.Emit(AuthRequiredEvent{Status: 401})
	unsubFirst()
	b.Emit(AuthRequiredEvent{Status: 403})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}
