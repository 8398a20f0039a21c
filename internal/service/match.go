package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/factsuniv/Pk4/internal/domain/model"
	"github.com/factsuniv/Pk4/internal/kvstore"
)

// JobFeed defines the read surface MatchService snapshots from.
type JobFeed interface {
	ListAll(ctx context.Context) ([]model.Job, error)
	ListForParker(ctx context.Context, parkerID string) ([]model.Job, error)
	ListForCustomer(ctx context.Context, customerID string) (*model.Job, error)
}

// ChangeWatcher exposes change signals for a stored collection.
type ChangeWatcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, func())
}

// MatchServiceOptions groups dependencies for MatchService.
type MatchServiceOptions struct {
	Feed    JobFeed       // Required: snapshot source
	Watcher ChangeWatcher // Required: change signal source
	Logger  *slog.Logger  // Optional: structured logger
}

// MatchService fans live job state out to subscribers. Each subscription gets
// an immediate snapshot on registration and a fresh one after every change to
// the job collection, including changes made by other processes sharing the
// store. Snapshot channels hold a single element and are latest-wins: a slow
// consumer observes fewer, newer snapshots, never stale ones, and never blocks
// another subscriber.
type MatchService struct {
	feed    JobFeed
	watcher ChangeWatcher
	logger  *slog.Logger

	mu             sync.Mutex
	board          map[chan []model.Job]struct{}
	parkerSubs     map[string]map[chan []model.Job]struct{}
	customerSubs   map[string]map[chan *model.Job]struct{}
	listenerCancel context.CancelFunc
}

// NewMatchService constructs a MatchService.
func NewMatchService(opts MatchServiceOptions) (*MatchService, error) {
	if opts.Feed == nil {
		return nil, errors.New("job feed is required")
	}
	if opts.Watcher == nil {
		return nil, errors.New("change watcher is required")
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("component", "match_service")
	}

	return &MatchService{
		feed:         opts.Feed,
		watcher:      opts.Watcher,
		logger:       logger,
		board:        make(map[chan []model.Job]struct{}),
		parkerSubs:   make(map[string]map[chan []model.Job]struct{}),
		customerSubs: make(map[string]map[chan *model.Job]struct{}),
	}, nil
}

// SubscribeBoard subscribes to the full live job board. The returned channel
// carries the current snapshot immediately and a fresh one after every change.
func (s *MatchService) SubscribeBoard(ctx context.Context) (func(), <-chan []model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The listener must be watching before the seed is read: a write landing
	// during the read signals the listener, whose fan-out waits on mu and so
	// pushes a fresh snapshot right after this returns.
	s.ensureListener()
	snapshot, err := s.feed.ListAll(ctx)
	if err != nil {
		s.maybeStopListener()
		return nil, nil, err
	}

	ch := make(chan []model.Job, 1)
	s.board[ch] = struct{}{}
	ch <- snapshot

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.board[ch]; !ok {
			return
		}
		delete(s.board, ch)
		drainAndClose(ch)
		s.maybeStopListener()
	}
	return unsub, ch, nil
}

// SubscribeParker subscribes to a Parker's job feed: open offers plus their
// own in-progress job.
func (s *MatchService) SubscribeParker(ctx context.Context, parkerID string) (func(), <-chan []model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureListener()
	snapshot, err := s.feed.ListForParker(ctx, parkerID)
	if err != nil {
		s.maybeStopListener()
		return nil, nil, err
	}

	ch := make(chan []model.Job, 1)
	if s.parkerSubs[parkerID] == nil {
		s.parkerSubs[parkerID] = make(map[chan []model.Job]struct{})
	}
	s.parkerSubs[parkerID][ch] = struct{}{}
	ch <- snapshot

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subscribers := s.parkerSubs[parkerID]
		if subscribers == nil {
			return
		}
		if _, ok := subscribers[ch]; !ok {
			return
		}
		delete(subscribers, ch)
		drainAndClose(ch)
		if len(subscribers) == 0 {
			delete(s.parkerSubs, parkerID)
		}
		s.maybeStopListener()
	}
	return unsub, ch, nil
}

// SubscribeCustomer subscribes to a customer's current job. The snapshot is
// nil while the customer has no live job.
func (s *MatchService) SubscribeCustomer(ctx context.Context, customerID string) (func(), <-chan *model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureListener()
	snapshot, err := s.feed.ListForCustomer(ctx, customerID)
	if err != nil {
		s.maybeStopListener()
		return nil, nil, err
	}

	ch := make(chan *model.Job, 1)
	if s.customerSubs[customerID] == nil {
		s.customerSubs[customerID] = make(map[chan *model.Job]struct{})
	}
	s.customerSubs[customerID][ch] = struct{}{}
	ch <- snapshot

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subscribers := s.customerSubs[customerID]
		if subscribers == nil {
			return
		}
		if _, ok := subscribers[ch]; !ok {
			return
		}
		delete(subscribers, ch)
		drainAndClose(ch)
		if len(subscribers) == 0 {
			delete(s.customerSubs, customerID)
		}
		s.maybeStopListener()
	}
	return unsub, ch, nil
}

// StopAll tears down every subscription and the change listener. Subscribers
// observe their channels closing.
func (s *MatchService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listenerCancel != nil {
		s.listenerCancel()
		s.listenerCancel = nil
	}
	for ch := range s.board {
		drainAndClose(ch)
		delete(s.board, ch)
	}
	for parkerID, subscribers := range s.parkerSubs {
		for ch := range subscribers {
			drainAndClose(ch)
		}
		delete(s.parkerSubs, parkerID)
	}
	for customerID, subscribers := range s.customerSubs {
		for ch := range subscribers {
			drainAndClose(ch)
		}
		delete(s.customerSubs, customerID)
	}
}

// ensureListener starts the change listener on the first subscription. The
// watch is established synchronously so no change can slip past between a
// subscriber's seed read and the listener coming up. Callers must hold mu.
func (s *MatchService) ensureListener() {
	if s.listenerCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	signals, stop := s.watcher.Watch(ctx, kvstore.KeyJobs)
	s.listenerCancel = cancel
	go s.listenLoop(ctx, signals, stop)
}

// maybeStopListener stops the change listener once the last subscription is
// gone. Callers must hold mu.
func (s *MatchService) maybeStopListener() {
	if len(s.board)+len(s.parkerSubs)+len(s.customerSubs) > 0 {
		return
	}
	if s.listenerCancel != nil {
		s.listenerCancel()
		s.listenerCancel = nil
	}
}

func (s *MatchService) listenLoop(ctx context.Context, signals <-chan struct{}, stop func()) {
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			s.fanOut(ctx)
		}
	}
}

// fanOut recomputes every subscribed view and pushes fresh snapshots. Views
// are computed outside the lock so a slow store read never stalls subscribe
// and unsubscribe calls.
func (s *MatchService) fanOut(ctx context.Context) {
	s.mu.Lock()
	hasBoard := len(s.board) > 0
	parkerIDs := make([]string, 0, len(s.parkerSubs))
	for id := range s.parkerSubs {
		parkerIDs = append(parkerIDs, id)
	}
	customerIDs := make([]string, 0, len(s.customerSubs))
	for id := range s.customerSubs {
		customerIDs = append(customerIDs, id)
	}
	s.mu.Unlock()

	var boardSnap []model.Job
	if hasBoard {
		var err error
		boardSnap, err = s.feed.ListAll(ctx)
		if err != nil {
			s.logSnapshotError(ctx, "board", err)
			hasBoard = false
		}
	}

	parkerSnaps := make(map[string][]model.Job, len(parkerIDs))
	for _, id := range parkerIDs {
		snap, err := s.feed.ListForParker(ctx, id)
		if err != nil {
			s.logSnapshotError(ctx, "parker", err)
			continue
		}
		parkerSnaps[id] = snap
	}

	customerSnaps := make(map[string]*model.Job, len(customerIDs))
	for _, id := range customerIDs {
		snap, err := s.feed.ListForCustomer(ctx, id)
		if err != nil {
			s.logSnapshotError(ctx, "customer", err)
			continue
		}
		customerSnaps[id] = snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if hasBoard {
		for ch := range s.board {
			offerLatest(ch, boardSnap)
		}
	}
	for id, snap := range parkerSnaps {
		for ch := range s.parkerSubs[id] {
			offerLatest(ch, snap)
		}
	}
	for id, snap := range customerSnaps {
		for ch := range s.customerSubs[id] {
			offerLatest(ch, snap)
		}
	}
}

func (s *MatchService) logSnapshotError(ctx context.Context, view string, err error) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, "snapshot refresh failed", "view", view, "error", err)
	}
}

// offerLatest replaces whatever the single-element channel holds with the
// newest snapshot without ever blocking.
func offerLatest[T any](ch chan T, snapshot T) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// drainAndClose removes any buffered snapshot before closing the channel so
// receivers observe a closed channel immediately.
func drainAndClose[T any](ch chan T) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}
