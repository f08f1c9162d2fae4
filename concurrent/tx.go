package concurrent

import "github.com/a-peyrard/syncseq/slices"

// Tx gives access to a working copy of the sequence inside a single exclusive window.
// It is only valid during the Batch callback that received it.
type Tx struct {
	work   []int
	closed bool
}

// Batch queues fn to run with the exclusive lock held: readers observe either none
// or all of the mutations it performs. The mutations are committed only if fn returns
// normally, a panicking fn leaves the sequence untouched.
//
// fn must not call methods of the Sequence itself, only those of the given Tx.
func (s *Sequence) Batch(fn func(tx *Tx)) {
	s.submit("batch", func() func() {
		tx := &Tx{work: slices.Clone(s.inner)}
		defer func() { tx.closed = true }()
		fn(tx)
		s.inner = tx.work
		return nil
	})
}

func (tx *Tx) items() []int {
	if tx.closed {
		panic("concurrent: Tx used outside its Batch")
	}
	return tx.work
}

// Len returns the current length of the sequence.
func (tx *Tx) Len() int {
	return len(tx.items())
}

// At returns the element at the given index, false if the index is out of range.
func (tx *Tx) At(index int) (int, bool) {
	items := tx.items()
	if index < 0 || index >= len(items) {
		return 0, false
	}
	return items[index], true
}

// Append adds values at the end of the sequence.
func (tx *Tx) Append(values ...int) {
	tx.work = append(tx.items(), values...)
}

// Insert inserts value before index, returning false if index is not in [0, Len()].
func (tx *Tx) Insert(index int, value int) bool {
	items := tx.items()
	if index < 0 || index > len(items) {
		return false
	}
	tx.work = insertAt(items, index, value)
	return true
}

// RemoveAt removes the element at index, returning false if index is out of range.
func (tx *Tx) RemoveAt(index int) (int, bool) {
	items := tx.items()
	if index < 0 || index >= len(items) {
		return 0, false
	}
	var removed int
	tx.work, removed = removeAt(items, index)
	return removed, true
}

// SetAt replaces the element at index, returning false if index is out of range.
func (tx *Tx) SetAt(index int, value int) bool {
	items := tx.items()
	if index < 0 || index >= len(items) {
		return false
	}
	items[index] = value
	return true
}
