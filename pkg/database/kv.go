package database

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KV reads when the key is absent or expired.
var ErrKeyNotFound = errors.New("kv: key not found")

// KV is the short-lived key/value storage used for state that must outlive a
// single request: pending gateway bookings, direct-booking lists and submit locks.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// GetDel reads and removes the key in one step.
	GetDel(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
