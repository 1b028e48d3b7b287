package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

var _ Backend = (*MemoryBackend)(nil)

const limiterIdleAfter = 10 * time.Minute

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type snapshot struct {
	vm       *dashboard.ViewModel
	storedAt time.Time
}

type MemoryBackend struct {
	limiters  map[string]*keyLimiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	latest      atomic.Pointer[snapshot]
	snapshotTTL time.Duration

	now  func() time.Time
	done chan struct{}
}

type MemoryOption func(*MemoryBackend)

// WithMemoryClock replaces time.Now for snapshot expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryBackend) { m.now = now }
}

// NewMemoryBackend refills limit.Limit tokens evenly across limit.Window. A zero snapshotTTL
// keeps snapshots forever.
func NewMemoryBackend(limit RateLimit, snapshotTTL time.Duration, opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{
		limiters:    make(map[string]*keyLimiter),
		rateLimit:   rate.Every(limit.Window / time.Duration(max(limit.Limit, 1))),
		rateBurst:   max(limit.Limit, 1),
		snapshotTTL: snapshotTTL,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (RateLimitResult, error) {
	kl := m.limiter(key)
	kl.lastSeen.Store(m.now().UnixNano())

	r := kl.limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryBackend) limiter(key string) *keyLimiter {
	m.limiterMu.RLock()
	kl, exists := m.limiters[key]
	m.limiterMu.RUnlock()

	if exists {
		return kl
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	if kl, exists = m.limiters[key]; exists {
		return kl
	}

	kl = &keyLimiter{limiter: rate.NewLimiter(m.rateLimit, m.rateBurst)}
	m.limiters[key] = kl
	return kl
}

func (m *MemoryBackend) Put(_ context.Context, vm *dashboard.ViewModel) error {
	m.latest.Store(&snapshot{vm: vm, storedAt: m.now()})
	return nil
}

func (m *MemoryBackend) Latest(_ context.Context) (*dashboard.ViewModel, error) {
	s := m.latest.Load()
	if s == nil {
		return nil, ErrNotFound
	}
	if m.snapshotTTL > 0 && m.now().Sub(s.storedAt) > m.snapshotTTL {
		return nil, ErrNotFound
	}
	return s.vm, nil
}

func (m *MemoryBackend) Close() error {
	close(m.done)
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryBackend) evictIdle() {
	cutoff := m.now().Add(-limiterIdleAfter).UnixNano()

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()
	for key, kl := range m.limiters {
		if kl.lastSeen.Load() < cutoff {
			delete(m.limiters, key)
		}
	}
}
