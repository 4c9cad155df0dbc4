package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence facade shared by the view counters and the
// bookmark records. Implementations: Redis (deployed), a local JSON file
// (development fallback) and an in-memory map (tests).
//
// Every operation is atomic at the single-key level only. Multi-step
// sequences (list then batch-get) carry no isolation guarantee: a concurrent
// write during a listing may or may not be reflected.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Increment adds one to the integer counter at key, creating it at 1,
	// and returns the new count.
	Increment(ctx context.Context, key string) (int64, error)

	// KeysByPrefix returns all keys sharing the prefix. Order is unspecified.
	KeysByPrefix(ctx context.Context, prefix string) ([]string, error)

	// BatchGet returns values aligned by index with keys; missing keys
	// yield an empty string.
	BatchGet(ctx context.Context, keys []string) ([]string, error)

	// SetAdd adds member to the unordered set at key.
	SetAdd(ctx context.Context, key, member string) error

	// SetRemove removes member from the set at key.
	SetRemove(ctx context.Context, key, member string) error

	// SetMembers returns all members of the set at key. Order is unspecified.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// SetIndexed stores value under key and records member in the index set
	// as one batched write (a pipeline on the Redis backend).
	SetIndexed(ctx context.Context, key, value, indexKey, member string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
