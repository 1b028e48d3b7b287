// Package storage holds the server's latest dashboard snapshot and its per-client rate limits,
// in memory for development and in redis for production.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

var ErrNotFound = errors.New("snapshot not found")

type RateLimitResult struct {
	Allowed bool
	// RetryAfter is how long until the next request would be allowed; zero when Allowed.
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

type SnapshotStore interface {
	// Put replaces the latest snapshot; the last write wins.
	Put(ctx context.Context, vm *dashboard.ViewModel) error

	// Latest returns ErrNotFound when nothing was stored or the snapshot expired.
	Latest(ctx context.Context) (*dashboard.ViewModel, error)
}

type Backend interface {
	RateLimiter
	SnapshotStore

	Close() error

	Ping(ctx context.Context) error
}

// RateLimit is a fixed budget of requests per window.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

func PerMinute(n int) RateLimit {
	return RateLimit{Limit: n, Window: time.Minute}
}
