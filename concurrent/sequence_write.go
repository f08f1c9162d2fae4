package concurrent

import (
	"context"
	"fmt"

	"github.com/a-peyrard/syncseq/fn"
	"github.com/a-peyrard/syncseq/slices"
)

// mutation is a unit of deferred work applied under the exclusive lock.
// apply may return a notification, run once the lock is released.
type mutation struct {
	op    string
	apply func() (notify func())
}

// Append adds a value at the end of the sequence.
func (s *Sequence) Append(value int) {
	s.submit("append", func() func() {
		s.inner = append(s.inner, value)
		return nil
	})
}

// AppendAll adds all the values at the end of the sequence, preserving their order.
// The values are copied before this method returns.
func (s *Sequence) AppendAll(values []int) {
	values = slices.Clone(values)
	s.submit("append_all", func() func() {
		s.inner = append(s.inner, values...)
		return nil
	})
}

// Insert inserts value before the element at index, index being valid in [0, Len()]
// when the insertion executes. A stale index skips the insertion.
func (s *Sequence) Insert(index int, value int) {
	s.submit("insert", func() func() {
		if index < 0 || index > len(s.inner) {
			return s.staleIndex("insert", index)
		}
		s.inner = insertAt(s.inner, index, value)
		return nil
	})
}

// RemoveAt removes the element at index. If done is not nil, it receives the removed value.
//
// The index is checked when the removal executes, not when it is submitted: a
// stale index skips the removal and done is never called. Callers relying on
// positions while other goroutines mutate the sequence should prefer RemoveFirst.
func (s *Sequence) RemoveAt(index int, done func(removed int)) {
	s.submit("remove_at", func() func() {
		if index < 0 || index >= len(s.inner) {
			return s.staleIndex("remove_at", index)
		}
		var removed int
		s.inner, removed = removeAt(s.inner, index)
		return notifyWith(done, removed)
	})
}

// RemoveFirst removes the first element satisfying the predicate, if any.
// done, if not nil, receives the removed value and is only called if a match was found.
//
// The predicate runs on the writer goroutine with the exclusive lock held: it must not
// call methods of the sequence, or the writer and every later reader would deadlock.
func (s *Sequence) RemoveFirst(predicate fn.Predicate[int], done func(removed int)) {
	s.submit("remove_first", func() func() {
		idx, found := slices.IndexFunc(s.inner, predicate)
		if !found {
			return nil
		}
		var removed int
		s.inner, removed = removeAt(s.inner, idx)
		return notifyWith(done, removed)
	})
}

// RemoveAll empties the sequence. done, if not nil, receives the contents as they were
// right before the removal.
func (s *Sequence) RemoveAll(done func(previous []int)) {
	s.submit("remove_all", func() func() {
		previous := s.inner
		s.inner = nil
		return notifyWith(done, previous)
	})
}

// SetAt replaces the element at index. It is a no-op if index is out of range
// when the replacement executes.
func (s *Sequence) SetAt(index int, value int) {
	s.submit("set_at", func() func() {
		if index < 0 || index >= len(s.inner) {
			return s.staleIndex("set_at", index)
		}
		s.inner[index] = value
		return nil
	})
}

// Settle blocks until every write submitted before the call has been applied and
// its completion callback has returned.
//
// Settle must not be called from a completion callback or a stale index handler.
func (s *Sequence) Settle() {
	_ = s.SettleContext(context.Background())
}

// SettleContext is like Settle but gives up waiting when ctx is done.
// Pending writes are still applied.
func (s *Sequence) SettleContext(ctx context.Context) error {
	settled := make(chan struct{})
	s.submit("settle", func() func() {
		return func() { close(settled) }
	})

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("unable to settle sequence: %w", ctx.Err())
	}
}

func insertAt(items []int, index int, value int) []int {
	items = append(items, 0)
	copy(items[index+1:], items[index:])
	items[index] = value
	return items
}

func removeAt(items []int, index int) ([]int, int) {
	removed := items[index]
	return append(items[:index], items[index+1:]...), removed
}

func (s *Sequence) staleIndex(op string, index int) func() {
	err := &IndexError{Op: op, Index: index, Length: len(s.inner)}
	return func() {
		s.staleIndexHandler(err)
	}
}

func notifyWith[T any](done func(T), value T) func() {
	if done == nil {
		return nil
	}
	return func() {
		done(value)
	}
}

// submit queues a mutation, starting the writer goroutine if none is running.
func (s *Sequence) submit(op string, apply func() func()) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	s.pending = append(s.pending, mutation{op: op, apply: apply})
	if !s.draining {
		s.draining = true
		go s.drain()
	}
}

// drain applies pending mutations in order until the queue is empty.
func (s *Sequence) drain() {
	for {
		s.queueMu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.queueMu.Unlock()
			return
		}
		batch := s.pending
		s.pending = nil
		s.queueMu.Unlock()

		for _, m := range batch {
			if notify := s.applyExclusive(m); notify != nil {
				s.runNotify(m.op, notify)
			}
		}
	}
}

func (s *Sequence) applyExclusive(m mutation) (notify func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("op", m.op).
				Interface("panic", r).
				Msg("recovered panic while applying mutation")
			notify = nil
		}
	}()

	return m.apply()
}

func (s *Sequence) runNotify(op string, notify func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("op", op).
				Interface("panic", r).
				Msg("recovered panic in completion callback")
		}
	}()

	notify()
}
