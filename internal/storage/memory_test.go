package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryRateLimit(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(PerMinute(3), 0)
	t.Cleanup(func() { _ = m.Close() })

	for range 3 {
		res, err := m.Allow(t.Context(), "client-a")
		require.NoError(t, err)
		require.True(t, res.Allowed)
		require.Zero(t, res.RetryAfter)
	}

	res, err := m.Allow(t.Context(), "client-a")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Greater(t, res.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, res.RetryAfter, 20*time.Second)

	// keys are independent
	res, err = m.Allow(t.Context(), "client-b")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestMemoryRateLimitConcurrent(t *testing.T) {
	t.Parallel()

	const limit = 5
	m := NewMemoryBackend(PerMinute(limit), 0)
	t.Cleanup(func() { _ = m.Close() })

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Go(func() {
			res, err := m.Allow(t.Context(), "shared")
			if err != nil || !res.Allowed {
				return
			}
			mu.Lock()
			allowed++
			mu.Unlock()
		})
	}
	wg.Wait()

	require.Equal(t, limit, allowed)
}

func TestMemorySnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	m := NewMemoryBackend(PerMinute(1), time.Hour, WithMemoryClock(clock))
	t.Cleanup(func() { _ = m.Close() })

	_, err := m.Latest(t.Context())
	require.ErrorIs(t, err, ErrNotFound)

	first := &dashboard.ViewModel{LoadedAt: now}
	second := &dashboard.ViewModel{LoadedAt: now.Add(time.Minute)}
	require.NoError(t, m.Put(t.Context(), first))
	require.NoError(t, m.Put(t.Context(), second))

	got, err := m.Latest(t.Context())
	require.NoError(t, err)
	require.Same(t, second, got)

	mu.Lock()
	now = now.Add(2 * time.Hour)
	mu.Unlock()

	_, err = m.Latest(t.Context())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEvictIdle(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	m := NewMemoryBackend(PerMinute(1), 0, WithMemoryClock(clock))
	t.Cleanup(func() { _ = m.Close() })

	_, err := m.Allow(t.Context(), "idle")
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(limiterIdleAfter + time.Second)
	mu.Unlock()
	m.evictIdle()

	m.limiterMu.RLock()
	defer m.limiterMu.RUnlock()
	require.Empty(t, m.limiters)
}
