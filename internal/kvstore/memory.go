package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store implementation used by tests and
// single-process deployments. It honours the same CAS and change-signal
// contract as the Redis-backed store.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	watchers map[string]map[chan struct{}]struct{}
}

type memoryEntry struct {
	data    []byte
	version uint64
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		watchers: make(map[string]map[chan struct{}]struct{}),
	}
}

// Get returns the payload and version stored under key. A key that has never
// been written yields (nil, 0, nil).
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, 0, nil
	}
	// Copy so callers cannot mutate stored state.
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, entry.version, nil
}

// Put writes data under key if prev matches the stored version, then signals
// every watcher of the key (the writer's own watchers included).
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, prev uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[key]
	if entry.version != prev {
		return 0, ErrVersionConflict
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	next := entry.version + 1
	s.entries[key] = memoryEntry{data: stored, version: next}

	for ch := range s.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return next, nil
}

// Watch registers a change-signal channel for key. The returned stop function
// unregisters it; stopping twice is safe.
func (s *MemoryStore) Watch(_ context.Context, key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	if s.watchers[key] == nil {
		s.watchers[key] = make(map[chan struct{}]struct{})
	}
	s.watchers[key][ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if watchers := s.watchers[key]; watchers != nil {
				delete(watchers, ch)
				if len(watchers) == 0 {
					delete(s.watchers, key)
				}
			}
			drainAndClose(ch)
		})
	}
	return ch, stop
}

// drainAndClose removes any buffered signal before closing the channel so
// receivers observe a closed channel immediately.
func drainAndClose(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
