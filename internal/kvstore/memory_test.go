package kvstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()
	data, version, err := store.Get(context.Background(), KeyJobs)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Zero(t, version)
}

func TestMemoryStore_PutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	v1, err := store.Put(ctx, KeyJobs, []byte(`[{"id":"a"}]`), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	data, version, err := store.Get(ctx, KeyJobs)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), data)
	assert.Equal(t, uint64(1), version)

	v2, err := store.Put(ctx, KeyJobs, []byte(`[]`), v1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)
}

func TestMemoryStore_VersionConflict(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Put(ctx, KeyJobs, []byte(`one`), 0)
	require.NoError(t, err)

	// Stale writer still holding version 0.
	_, err = store.Put(ctx, KeyJobs, []byte(`two`), 0)
	require.ErrorIs(t, err, ErrVersionConflict)

	// The first write survives.
	data, version, err := store.Get(ctx, KeyJobs)
	require.NoError(t, err)
	assert.Equal(t, []byte(`one`), data)
	assert.Equal(t, uint64(1), version)
}

func TestMemoryStore_ExactlyOneConcurrentWinner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan error, writers)

	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Put(ctx, KeyJobs, []byte{byte(i)}, 0)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrVersionConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, writers-1, conflicts)
}

func TestMemoryStore_WatchSignalsOnPut(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ch, stop := store.Watch(ctx, KeyJobs)
	defer stop()

	_, err := store.Put(ctx, KeyJobs, []byte(`x`), 0)
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change signal after Put")
	}
}

func TestMemoryStore_WatchCoalescesSignals(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ch, stop := store.Watch(ctx, KeyJobs)
	defer stop()

	v, err := store.Put(ctx, KeyJobs, []byte(`a`), 0)
	require.NoError(t, err)
	_, err = store.Put(ctx, KeyJobs, []byte(`b`), v)
	require.NoError(t, err)

	// Two writes may coalesce into one pending signal; after draining it, the
	// latest state must be visible.
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}
	data, _, err := store.Get(ctx, KeyJobs)
	require.NoError(t, err)
	assert.Equal(t, []byte(`b`), data)
}

func TestMemoryStore_WatchIsolatedPerKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	jobsCh, stopJobs := store.Watch(ctx, KeyJobs)
	defer stopJobs()

	_, err := store.Put(ctx, KeyParkers, []byte(`p`), 0)
	require.NoError(t, err)

	select {
	case <-jobsCh:
		t.Fatal("jobs watcher should not observe parker writes")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryStore_StopClosesChannel(t *testing.T) {
	store := NewMemoryStore()
	ch, stop := store.Watch(context.Background(), KeyJobs)

	stop()
	stop() // stopping twice is safe

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after stop")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after stop")
	}

	// Writes after stop must not panic on the closed channel.
	_, err := store.Put(context.Background(), KeyJobs, []byte(`x`), 0)
	require.NoError(t, err)
}
