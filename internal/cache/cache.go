package cache

import (
	"context"
	"time"
)

// Cache stores computed responses keyed by a request fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Noop satisfies Cache without storing anything; used when no Redis
// address is configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (Noop) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
