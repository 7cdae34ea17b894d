package slotlist

import (
	"fmt"
	"slices"
)

// Compact removes every hole, shifting live elements down while keeping
// their relative order. The free stack is emptied and the backing store is
// reallocated to exactly the live count.
//
// Compact is O(n) and always bumps [List.Generation]: every position and
// iterator obtained before the call is stale.
func (l *List[T]) Compact() {
	live := make([]Slot[T], 0, l.Len())

	for _, slot := range l.slots {
		if slot.occupied {
			live = append(live, slot)
		}
	}

	l.slots = live
	l.free = l.free[:0]
	l.generation++
	l.mods++
}

// liveBefore returns how many live elements sit below pos. O(holes).
func (l *List[T]) liveBefore(pos int) int {
	holes := 0

	for _, f := range l.free {
		if f < pos {
			holes++
		}
	}

	return pos - holes
}

// CheckInvariants verifies that the free stack tracks exactly the holes of
// the backing store. It returns nil or an error wrapping [ErrCorrupt] that
// describes the first violation found. O(n).
func (l *List[T]) CheckInvariants() error {
	tracked := make(map[int]struct{}, len(l.free))

	for i, pos := range l.free {
		if pos < 0 || pos >= len(l.slots) {
			return fmt.Errorf("%w: free[%d]=%d outside store of length %d", ErrCorrupt, i, pos, len(l.slots))
		}

		if l.slots[pos].occupied {
			return fmt.Errorf("%w: free[%d]=%d is occupied", ErrCorrupt, i, pos)
		}

		if _, dup := tracked[pos]; dup {
			return fmt.Errorf("%w: free[%d]=%d tracked twice", ErrCorrupt, i, pos)
		}

		tracked[pos] = struct{}{}
	}

	for pos, slot := range l.slots {
		if slot.occupied {
			continue
		}

		if _, ok := tracked[pos]; !ok {
			return fmt.Errorf("%w: hole at %d is not tracked", ErrCorrupt, pos)
		}
	}

	return nil
}

// FreePositions returns a copy of the free stack, bottom first. The last
// element is the position the next [List.Add] reuses.
func (l *List[T]) FreePositions() []int {
	return slices.Clone(l.free)
}
