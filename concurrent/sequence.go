// Package concurrent provides a thread-safe ordered sequence of integers.
//
// Reads run concurrently under a shared lock and return copies, never a
// reference to the backing storage. Writes are queued and applied one at a
// time, in submission order, under the exclusive lock by a writer goroutine
// that only lives while the queue is not empty.
//
// Functions given to read operations run while the shared lock is held: they
// must not call back into the same sequence, as a waiting writer would then
// deadlock them.
package concurrent

import (
	"fmt"
	"iter"
	"sync"

	"github.com/a-peyrard/syncseq/fn"
	"github.com/a-peyrard/syncseq/option"
	"github.com/a-peyrard/syncseq/slices"
	"github.com/rs/zerolog"
)

// Sequence is an ordered sequence of integers safe for concurrent use.
//
// A Sequence must not be copied after first use.
type Sequence struct {
	inner []int
	mu    sync.RWMutex

	queueMu  sync.Mutex
	pending  []mutation
	draining bool

	logger            *zerolog.Logger
	staleIndexHandler func(err *IndexError)
}

// New creates a new empty sequence.
func New(opts ...option.Option[Options]) *Sequence {
	return NewFrom(nil, opts...)
}

// NewFrom creates a new sequence initialized with a copy of the given values.
func NewFrom(initial []int, opts ...option.Option[Options]) *Sequence {
	options := buildOptions(opts...)
	return &Sequence{
		inner:             slices.Clone(initial),
		logger:            options.logger,
		staleIndexHandler: options.staleIndexHandler,
	}
}

// First returns the first element, false if the sequence is empty.
func (s *Sequence) First() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.inner) == 0 {
		return 0, false
	}
	return s.inner[0], true
}

// Last returns the last element, false if the sequence is empty.
func (s *Sequence) Last() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.inner) == 0 {
		return 0, false
	}
	return s.inner[len(s.inner)-1], true
}

// Len returns the current length of the sequence.
func (s *Sequence) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inner)
}

// IsEmpty returns true if the sequence has no element.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// String renders the current contents the way fmt renders an []int.
func (s *Sequence) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprint(s.inner)
}

// At returns the element at the given index, false if the index is out of range.
func (s *Sequence) At(index int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.inner) {
		return 0, false
	}
	return s.inner[index], true
}

// Snapshot returns a copy of the current contents.
func (s *Sequence) Snapshot() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.inner)
}

// All iterates over a snapshot of the contents taken when the iteration starts,
// so the loop body is free to use the sequence.
func (s *Sequence) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i, v := range s.Snapshot() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// FirstMatching returns the first element satisfying the predicate.
func (s *Sequence) FirstMatching(predicate fn.Predicate[int]) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Find(s.inner, predicate)
}

// Filter returns the elements satisfying the predicate, in order.
func (s *Sequence) Filter(predicate fn.Predicate[int]) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Filter(s.inner, predicate)
}

// IndexMatching returns the index of the first element satisfying the predicate.
func (s *Sequence) IndexMatching(predicate fn.Predicate[int]) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.IndexFunc(s.inner, predicate)
}

// Sorted returns a sorted copy of the contents, the sequence itself is untouched.
func (s *Sequence) Sorted(comparator fn.Comparator[int]) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.SortedCopy(s.inner, comparator)
}

// ForEach calls visit on every element, in order.
func (s *Sequence) ForEach(visit fn.Consumer[int]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.inner {
		visit(v)
	}
}

// ContainsMatching returns true if at least one element satisfies the predicate.
func (s *Sequence) ContainsMatching(predicate fn.Predicate[int]) bool {
	_, found := s.IndexMatching(predicate)
	return found
}

// Contains returns true if the sequence holds the given value.
func (s *Sequence) Contains(value int) bool {
	return s.ContainsMatching(fn.EqualTo(value))
}

// MapCompact transforms every element of the sequence, keeping only the results
// for which transform returns true.
func MapCompact[R any](s *Sequence, transform func(int) (R, bool)) []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.FilterMap(s.inner, transform)
}
