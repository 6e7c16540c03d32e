package state

import (
	"sync/atomic"

	"github.com/go4org/hashtriemap"
)

// Tracker hands out monotonically increasing tickets per snapshot field so
// that only the most recently issued request for a field may write it.
type Tracker struct {
	seqs hashtriemap.HashTrieMap[string, *atomic.Uint64]
}

// Ticket identifies one request against a field.
type Ticket struct {
	field   string
	seq     uint64
	counter *atomic.Uint64
}

func (t *Tracker) Begin(field string) Ticket {
	counter, _ := t.seqs.LoadOrStore(field, new(atomic.Uint64))
	return Ticket{field: field, seq: counter.Add(1), counter: counter}
}

// Current is false once a newer ticket has been issued for the same field.
// The zero Ticket is always current.
func (t Ticket) Current() bool {
	if t.counter == nil {
		return true
	}
	return t.counter.Load() == t.seq
}

func (t Ticket) Field() string {
	return t.field
}
