package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp_market/internal/pkg/logger"
)

func TestPollerFetchesImmediately(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "hello", nil
	}, time.Hour, logger.NewAdapter())
	defer p.Stop()

	require.Eventually(t, func() bool {
		snap := p.Snapshot()
		return !snap.InitialLoading && snap.Data == "hello"
	}, 2*time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPollerInitialLoadingFlag(t *testing.T) {
	release := make(chan struct{})
	p := NewPoller(func(ctx context.Context) (string, error) {
		<-release
		return "done", nil
	}, time.Hour, logger.NewAdapter())
	defer p.Stop()

	snap := p.Snapshot()
	assert.True(t, snap.InitialLoading)
	assert.False(t, snap.Refreshing)

	close(release)
	require.Eventually(t, func() bool {
		return !p.Snapshot().InitialLoading
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPollerKeepsPollingAfterError(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(func(ctx context.Context) (int, error) {
		n := calls.Add(1)
		if n == 2 {
			return 0, errors.New("backend hiccup")
		}
		return int(n), nil
	}, 10*time.Millisecond, logger.NewAdapter())
	defer p.Stop()

	// wait past the failing second fetch
	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		snap := p.Snapshot()
		return snap.Err == nil && snap.Data >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPollerErrorKeepsLastGoodData(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return "", errors.New("down")
	}, 10*time.Millisecond, logger.NewAdapter())
	defer p.Stop()

	require.Eventually(t, func() bool {
		snap := p.Snapshot()
		return snap.Err != nil && snap.Data == "good"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPollerDiscardsStaleResponse(t *testing.T) {
	releaseFirst := make(chan struct{})
	var calls atomic.Int64
	p := NewPoller(func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-releaseFirst // first fetch stalls past later ticks
			return "stale", nil
		}
		return "fresh", nil
	}, 10*time.Millisecond, logger.NewAdapter())
	defer p.Stop()

	// a later fetch has completed while the first is still hanging
	require.Eventually(t, func() bool {
		return p.Snapshot().Data == "fresh"
	}, 2*time.Second, 5*time.Millisecond)

	close(releaseFirst)

	// the first response arrives last but must not overwrite fresher data
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "fresh", p.Snapshot().Data)
}

func TestPollerManagerStartsPerKey(t *testing.T) {
	var calls atomic.Int64
	m := NewPollerManager(func(key string) FetchFunc[string] {
		return func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "data-" + key, nil
		}
	}, time.Hour, time.Hour, logger.NewAdapter())
	defer m.Stop()

	snap := m.Get("srv-1")
	assert.True(t, snap.InitialLoading)

	require.Eventually(t, func() bool {
		return m.Get("srv-1").Data == "data-srv-1"
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return m.Get("srv-2").Data == "data-srv-2"
	}, 2*time.Second, 5*time.Millisecond)

	// one immediate fetch per key, no extra pollers
	assert.EqualValues(t, 2, calls.Load())
}

func TestPollerManagerStopsIdlePollers(t *testing.T) {
	var calls atomic.Int64
	m := NewPollerManager(func(key string) FetchFunc[string] {
		return func(ctx context.Context) (string, error) {
			calls.Add(1)
			return key, nil
		}
	}, time.Hour, 30*time.Millisecond, logger.NewAdapter())
	defer m.Stop()

	m.Get("srv-1")
	before := calls.Load()

	// untouched long past the idle TTL, the sweeper must stop the poller
	time.Sleep(120 * time.Millisecond)

	// a new Get starts a fresh poller with a fresh immediate fetch
	m.Get("srv-1")
	require.Eventually(t, func() bool {
		return calls.Load() > before
	}, 2*time.Second, 5*time.Millisecond)
}
