package state

import "sync"

// Store holds one immutable snapshot and publishes every replacement to
// its subscribers. Snapshots are values: updates build a new S from the old
// one and never mutate shared slices in place.
type Store[S any] struct {
	// notifyMu orders delivery so subscribers see snapshots in update order.
	notifyMu sync.Mutex

	mu     sync.Mutex
	state  S
	closed bool
	nextID int
	subs   map[int]func(S)
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{
		state: initial,
		subs:  make(map[int]func(S)),
	}
}

// Get returns the current snapshot.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update replaces the snapshot with fn(current) and notifies subscribers.
// It reports false, and changes nothing, once the store is closed.
// Subscribers must not call Update from their callback.
func (s *Store[S]) Update(fn func(S) S) bool {
	return s.update(func(cur S) (S, bool) { return fn(cur), true })
}

// Apply is Update guarded by a ticket: the change is dropped when a newer
// request for the same field has started since the ticket was issued.
func (s *Store[S]) Apply(t Ticket, fn func(S) S) bool {
	return s.update(func(cur S) (S, bool) {
		if !t.Current() {
			return cur, false
		}
		return fn(cur), true
	})
}

func (s *Store[S]) update(fn func(S) (S, bool)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	next, changed := fn(s.state)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state = next
	subs := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return true
}

// Subscribe calls fn with the current snapshot and again after every update
// until the returned function is called or the store is closed.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drops all subscribers and turns later updates into no-ops.
func (s *Store[S]) Close() {
	s.mu.Lock()
	s.closed = true
	s.subs = make(map[int]func(S))
	s.mu.Unlock()
}

func (s *Store[S]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
