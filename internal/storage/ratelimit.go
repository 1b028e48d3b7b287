package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var rateLimitLua string

var rateLimitScript = redis.NewScript(rateLimitLua)

func (l RateLimit) args() []any {
	return []any{
		l.Window.Milliseconds(),
		l.Limit,
	}
}

func runRateLimitScript(ctx context.Context, client redis.Scripter, key string, limit RateLimit) (RateLimitResult, error) {
	result, err := rateLimitScript.Run(ctx, client,
		[]string{key},
		limit.args()...,
	).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(result) != 2 {
		return RateLimitResult{}, fmt.Errorf("unexpected rate limit script result: %v", result)
	}

	if result[0] == 1 {
		return RateLimitResult{Allowed: true}, nil
	}
	return RateLimitResult{
		Allowed:    false,
		RetryAfter: time.Duration(result[1]) * time.Millisecond,
	}, nil
}
