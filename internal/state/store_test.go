package state

import (
	"context"
	"sync"
	"testing"
	"time"
)

type counterState struct {
	Count int
	Items []string
}

func TestStore_UpdateNotifiesInOrder(t *testing.T) {
	s := NewStore(counterState{})

	var got []int
	s.Subscribe(func(st counterState) { got = append(got, st.Count) })

	for i := 0; i < 3; i++ {
		s.Update(func(st counterState) counterState {
			st.Count++
			return st
		})
	}

	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStore_SnapshotsAreIndependent(t *testing.T) {
	s := NewStore(counterState{Items: []string{"a"}})
	before := s.Get()

	s.Update(func(st counterState) counterState {
		st.Items = append(append([]string(nil), st.Items...), "b")
		return st
	})

	if len(before.Items) != 1 {
		t.Errorf("old snapshot changed: %v", before.Items)
	}
	if got := s.Get().Items; len(got) != 2 {
		t.Errorf("new snapshot = %v", got)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore(counterState{})
	calls := 0
	unsubscribe := s.Subscribe(func(counterState) { calls++ })
	unsubscribe()

	s.Update(func(st counterState) counterState { st.Count = 5; return st })

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (initial delivery only)", calls)
	}
}

func TestStore_ClosedIgnoresUpdates(t *testing.T) {
	s := NewStore(counterState{Count: 1})
	calls := 0
	s.Subscribe(func(counterState) { calls++ })
	s.Close()

	if s.Update(func(st counterState) counterState { st.Count = 9; return st }) {
		t.Error("Update() on closed store returned true")
	}
	if got := s.Get().Count; got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStore_ApplyDropsStaleTicket(t *testing.T) {
	var tr Tracker
	s := NewStore(counterState{})

	first := tr.Begin("list")
	second := tr.Begin("list")

	if !s.Apply(second, func(st counterState) counterState { st.Count = 2; return st }) {
		t.Fatal("Apply(second) = false, want true")
	}
	if s.Apply(first, func(st counterState) counterState { st.Count = 1; return st }) {
		t.Error("Apply(first) = true after newer ticket, want false")
	}
	if got := s.Get().Count; got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestTracker_FieldsAreIndependent(t *testing.T) {
	var tr Tracker
	list := tr.Begin("list")
	tr.Begin("detail")

	if !list.Current() {
		t.Error("list ticket invalidated by detail ticket")
	}
	if tr.Begin("list"); list.Current() {
		t.Error("list ticket still current after newer list ticket")
	}
	if !(Ticket{}).Current() {
		t.Error("zero ticket not current")
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(counterState{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(st counterState) counterState { st.Count++; return st })
		}()
	}
	wg.Wait()

	if got := s.Get().Count; got != 50 {
		t.Errorf("Count = %d, want 50", got)
	}
}

func TestBase_CloseCancelsInFlight(t *testing.T) {
	b := NewBase(counterState{})
	ctx, _, done := b.Begin(context.Background(), "list")
	defer done()

	b.Close()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("request context not cancelled by Close")
	}
	if b.Update(func(st counterState) counterState { st.Count = 1; return st }) {
		t.Error("Update() after Close returned true")
	}
}

func TestBase_DoneReleasesContext(t *testing.T) {
	b := NewBase(counterState{})
	ctx, done := b.Bind(context.Background())
	done()

	if ctx.Err() == nil {
		t.Error("context still live after done()")
	}
	b.Close()
}
