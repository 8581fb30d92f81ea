package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_FirstAttemptRunsImmediately(t *testing.T) {
	p := New(time.Hour)

	start := time.Now()
	err := p.Run(context.Background(), func(ctx context.Context) (bool, error) {
		return true, nil
	})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPoller_RunsUntilDone(t *testing.T) {
	p := New(time.Millisecond)

	var attempts atomic.Int64
	err := p.Run(context.Background(), func(ctx context.Context) (bool, error) {
		return attempts.Add(1) >= 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestPoller_SurfacesError(t *testing.T) {
	p := New(time.Millisecond)
	wantErr := errors.New("backend unreachable")

	var attempts atomic.Int64
	err := p.Run(context.Background(), func(ctx context.Context) (bool, error) {
		if attempts.Add(1) == 2 {
			return false, wantErr
		}
		return false, nil
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, int64(2), attempts.Load())
}

func TestPoller_ContextCancellation(t *testing.T) {
	p := New(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := p.Run(ctx, func(ctx context.Context) (bool, error) {
		return false, nil
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestPoller_StopDiscardsInFlightResult(t *testing.T) {
	p := New(time.Millisecond)

	started := make(chan struct{})
	release := make(chan struct{})
	wantErr := errors.New("stale failure")

	done := make(chan error, 1)
	go func() {
		done <- p.Run(context.Background(), func(ctx context.Context) (bool, error) {
			close(started)
			<-release
			// This result arrives after Stop and must be discarded.
			return false, wantErr
		})
	}()

	<-started
	p.Stop()
	close(release)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPoller_StopBeforeRun(t *testing.T) {
	p := New(time.Millisecond)
	p.Stop()

	var attempts atomic.Int64
	err := p.Run(context.Background(), func(ctx context.Context) (bool, error) {
		attempts.Add(1)
		return false, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), attempts.Load())
}
