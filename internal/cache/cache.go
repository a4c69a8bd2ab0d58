// Package cache provides the TTL read-through cache used by the analytics
// services. Two backends exist: an in-process store for deterministic use
// and a redis store for deployments that share analytics between replicas.
package cache

import (
	"context"
	"time"
)

// Store is a key -> (value, expiry) cache. A Get never returns a value older
// than the TTL it was stored with; writes are last-write-wins.
type Store interface {
	// Get unmarshals the cached value into dest and reports whether a live
	// entry existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
