package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

var _ Backend = (*RedisBackend)(nil)

const (
	rateLimitKeyPrefix = "healthmesh:ratelimit:"
	snapshotKey        = "healthmesh:snapshot:latest"
)

type RedisConfig struct {
	Client      *redis.Client
	RateLimit   RateLimit
	SnapshotTTL time.Duration
}

type RedisBackend struct {
	client      *redis.Client
	rateLimit   RateLimit
	snapshotTTL time.Duration
}

func NewRedisBackend(cfg RedisConfig) *RedisBackend {
	return &RedisBackend{
		client:      cfg.Client,
		rateLimit:   cfg.RateLimit,
		snapshotTTL: cfg.SnapshotTTL,
	}
}

func (r *RedisBackend) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	return runRateLimitScript(ctx, r.client, rateLimitKeyPrefix+key, r.rateLimit)
}

func (r *RedisBackend) Put(ctx context.Context, vm *dashboard.ViewModel) error {
	data, err := go_json.Marshal(vm)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey, data, r.snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

func (r *RedisBackend) Latest(ctx context.Context) (*dashboard.ViewModel, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var vm dashboard.ViewModel
	if err := go_json.Unmarshal(data, &vm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &vm, nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
