package slotlist

import (
	"fmt"
	"iter"
)

// Iterator walks the live elements of a [List] in ascending position order,
// skipping holes.
//
//	it := list.Iter()
//	for it.Next() {
//	    if expired(it.Value()) {
//	        _ = it.RemoveCurrent()
//	    }
//	}
//	if err := it.Err(); err != nil {
//	    // list was modified behind the iterator's back
//	}
//
// Iterators are fail-fast: any mutation of the list other than through
// [Iterator.RemoveCurrent] stops iteration with [ErrConcurrentModification].
// Overwriting a live element with [List.Set] is not a mutation in this sense.
type Iterator[T any] struct {
	list *List[T]
	pos  int
	mods uint64

	current bool
	removed bool
	err     error
}

// Iter returns an iterator positioned before the first element.
func (l *List[T]) Iter() *Iterator[T] {
	return &Iterator[T]{list: l, pos: -1, mods: l.mods}
}

// Next advances to the next live element. It returns false at the end of
// the list or once the iterator has failed; check [Iterator.Err].
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}

	if err := it.checkMods(); err != nil {
		return false
	}

	it.removed = false
	slots := it.list.slots

	for it.pos++; it.pos < len(slots); it.pos++ {
		if slots[it.pos].occupied {
			it.current = true

			return true
		}
	}

	it.pos = len(slots)
	it.current = false

	return false
}

// Index returns the position of the current element, or -1 if there is
// none.
func (it *Iterator[T]) Index() int {
	if !it.current || it.removed {
		return -1
	}

	return it.pos
}

// Value returns the current element. It returns the zero value before the
// first [Iterator.Next], after the end, and after [Iterator.RemoveCurrent].
func (it *Iterator[T]) Value() T {
	if !it.current || it.removed {
		var zero T

		return zero
	}

	return it.list.slots[it.pos].value
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Reset rewinds the iterator to before the first element and accepts the
// current state of the list, clearing any previous error.
func (it *Iterator[T]) Reset() {
	it.pos = -1
	it.mods = it.list.mods
	it.current = false
	it.removed = false
	it.err = nil
}

// RemoveCurrent removes the current element with the same hole logic as
// [List.RemoveAt]. Iteration continues with the element that followed it,
// also when the removal triggered automatic compaction.
//
// Returns [ErrInvalidArgument] if there is no current element, which
// includes calling it twice without advancing.
func (it *Iterator[T]) RemoveCurrent() error {
	if it.err != nil {
		return it.err
	}

	if err := it.checkMods(); err != nil {
		return err
	}

	if !it.current || it.removed {
		return fmt.Errorf("%w: iterator has no current element", ErrInvalidArgument)
	}

	list := it.list

	liveBefore := -1
	if list.compactsOnRemove(it.pos) {
		liveBefore = list.liveBefore(it.pos)
	}

	if list.removeAt(it.pos) {
		it.pos = liveBefore - 1
	}

	it.removed = true
	it.mods = list.mods

	return nil
}

func (it *Iterator[T]) checkMods() error {
	if it.mods != it.list.mods {
		it.current = false
		it.err = fmt.Errorf("%w: list changed during iteration", ErrConcurrentModification)

		return it.err
	}

	return nil
}

// compactsOnRemove reports whether removing the live position pos would
// trigger automatic compaction.
func (l *List[T]) compactsOnRemove(pos int) bool {
	holes := len(l.free)
	if pos != len(l.slots)-1 {
		holes++
	}

	return l.holeThreshold != 0 && holes > l.holeThreshold
}

// All returns an iterator over positions and live elements in ascending
// position order.
//
// It panics with an error wrapping [ErrConcurrentModification] if the list
// is mutated during the loop.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iter()

		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}

		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

// Values returns an iterator over the live elements in ascending position
// order. It panics like [List.All] on concurrent modification.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}
