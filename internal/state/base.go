package state

import "context"

// Base bundles what every state controller needs: the snapshot store, a
// ticket tracker for load ordering and a lifetime that cancels in-flight
// requests when the controller is closed.
type Base[S any] struct {
	store   *Store[S]
	tracker Tracker
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewBase[S any](initial S) *Base[S] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Base[S]{
		store:  NewStore(initial),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Snapshot returns the current state.
func (b *Base[S]) Snapshot() S {
	return b.store.Get()
}

// Subscribe registers fn for every snapshot, starting with the current one.
func (b *Base[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	return b.store.Subscribe(fn)
}

// Close cancels every in-flight request and stops all further updates.
func (b *Base[S]) Close() {
	b.cancel()
	b.store.Close()
}

func (b *Base[S]) Store() *Store[S] {
	return b.store
}

// Begin starts a request against field. The returned context is cancelled
// when either ctx or the controller ends; call done when the request returns.
func (b *Base[S]) Begin(ctx context.Context, field string) (context.Context, Ticket, context.CancelFunc) {
	ctx, done := b.Bind(ctx)
	return ctx, b.tracker.Begin(field), done
}

// Supersede issues a fresh ticket for each field without starting a
// request, so completions of loads already in flight are dropped.
func (b *Base[S]) Supersede(fields ...string) {
	for _, field := range fields {
		b.tracker.Begin(field)
	}
}

// Bind ties ctx to the controller lifetime without issuing a ticket, for
// requests that must not supersede each other (e.g. sends).
func (b *Base[S]) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Update replaces the snapshot unconditionally.
func (b *Base[S]) Update(fn func(S) S) bool {
	return b.store.Update(fn)
}

// Apply replaces the snapshot only if t is still the latest ticket for its field.
func (b *Base[S]) Apply(t Ticket, fn func(S) S) bool {
	return b.store.Apply(t, fn)
}
