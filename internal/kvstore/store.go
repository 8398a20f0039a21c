// Package kvstore provides the shared key-value persistence adapter backing the
// live job system. Collections are stored whole under fixed namespace keys, and
// every successful write raises a change signal observable from any execution
// context sharing the same store - including the writer's own.
package kvstore

import (
	"context"
	"errors"
)

const (
	// KeyJobs is the namespace key holding the serialized jobs collection.
	KeyJobs = "parkr:live:jobs"
	// KeyParkers is the namespace key holding the serialized parkers collection.
	KeyParkers = "parkr:live:parkers"
)

// ErrVersionConflict is returned by Put when the stored version no longer
// matches the version the caller read. The caller is expected to re-read,
// re-validate, and retry.
var ErrVersionConflict = errors.New("kvstore: version conflict")

// Store is the persistence adapter contract. Writes are compare-and-swap on a
// monotonically increasing per-key version so concurrent read-modify-write
// cycles cannot silently clobber each other.
//
// Get returns the raw payload and its current version; a key that has never
// been written yields (nil, 0, nil). Put succeeds only when prev matches the
// stored version (0 for a first write) and returns the new version.
//
// Watch returns a coalescing change-signal channel for the key plus a stop
// function. Every successful Put signals all watchers of that key, in every
// process sharing the store and in the writing process itself.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, uint64, error)
	Put(ctx context.Context, key string, data []byte, prev uint64) (uint64, error)
	Watch(ctx context.Context, key string) (<-chan struct{}, func())
}
