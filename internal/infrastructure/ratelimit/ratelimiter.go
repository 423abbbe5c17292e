package ratelimit

import (
	"context"
	"time"
)

// Config bounds request rates over rolling windows. A zero limit disables
// that window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
