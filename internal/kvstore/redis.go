package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// changeChannelPrefix namespaces the pub/sub channels carrying change signals.
const changeChannelPrefix = "parkr:changes:"

// RedisStore is the Redis-backed Store implementation shared by every process
// of a deployment. Optimistic concurrency rides a per-key version counter
// guarded by WATCH/MULTI; change signals ride a pub/sub channel per key, which
// also delivers the writer's own publishes back to its subscriptions, covering
// the self-notification half of the contract.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore constructs a RedisStore on the given client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func versionKey(key string) string {
	return key + ":ver"
}

func changeChannel(key string) string {
	return changeChannelPrefix + key
}

// Get returns the payload and version stored under key. A key that has never
// been written yields (nil, 0, nil).
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, uint64, error) {
	vals, err := s.client.MGet(ctx, key, versionKey(key)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis mget %s: %w", key, err)
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, 0, nil
	}

	var version uint64
	if verStr, ok := vals[1].(string); ok {
		if _, err := fmt.Sscanf(verStr, "%d", &version); err != nil {
			return nil, 0, fmt.Errorf("parse version for %s: %w", key, err)
		}
	}
	return []byte(raw), version, nil
}

// Put writes data under key if prev matches the stored version, bumping the
// version and publishing a change signal in the same transaction.
func (s *RedisStore) Put(ctx context.Context, key string, data []byte, prev uint64) (uint64, error) {
	verKey := versionKey(key)
	next := prev + 1

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis get %s: %w", verKey, err)
		}
		if current != prev {
			return ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.Set(ctx, verKey, next, 0)
			pipe.Publish(ctx, changeChannel(key), next)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, verKey)
	switch {
	case errors.Is(err, ErrVersionConflict):
		return 0, ErrVersionConflict
	case errors.Is(err, redis.TxFailedErr):
		// Another writer touched the version key between WATCH and EXEC.
		return 0, ErrVersionConflict
	case err != nil:
		return 0, fmt.Errorf("redis put %s: %w", key, err)
	}
	return next, nil
}

// Watch subscribes to the key's change channel and pumps coalesced signals
// until the stop function is called or the context is cancelled.
func (s *RedisStore) Watch(ctx context.Context, key string) (<-chan struct{}, func()) {
	sub := s.client.Subscribe(ctx, changeChannel(key))
	ch := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return ch, stop
}

var _ Store = (*RedisStore)(nil)
