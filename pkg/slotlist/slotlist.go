package slotlist

import (
	"fmt"
	"slices"
)

// List is an array-backed list of slots with a LIFO stack of free
// positions.
//
// The free stack and the empty slots of the backing store are kept in 1:1
// correspondence: every tracked position is a hole and every hole is
// tracked exactly once.
//
// A List must be created with [New]. It is not safe for concurrent use.
type List[T any] struct {
	slots []Slot[T]
	free  []int

	holeThreshold int

	// generation counts restructurings that invalidate positions.
	generation uint64

	// mods counts every mutation that an outstanding iterator must notice.
	mods uint64
}

// New returns an empty list configured by opts.
//
// Returns [ErrInvalidArgument] if Capacity or HoleThreshold is negative.
func New[T any](opts Options) (*List[T], error) {
	if opts.Capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, opts.Capacity)
	}

	if opts.HoleThreshold < 0 {
		return nil, fmt.Errorf("%w: negative hole threshold %d", ErrInvalidArgument, opts.HoleThreshold)
	}

	return &List[T]{
		slots:         make([]Slot[T], 0, opts.Capacity),
		holeThreshold: opts.HoleThreshold,
	}, nil
}

// Len returns the number of live elements. O(1).
func (l *List[T]) Len() int {
	return len(l.slots) - len(l.free)
}

// LenWithHoles returns the length of the backing store including holes.
// It is the upper bound for positional loops:
//
//	for pos := range list.LenWithHoles() {
//	    v, ok, _ := list.Get(pos) // ok is false for holes
//	}
func (l *List[T]) LenWithHoles() int {
	return len(l.slots)
}

// Holes returns the number of tracked holes.
func (l *List[T]) Holes() int {
	return len(l.free)
}

// Capacity returns the capacity of the backing store.
func (l *List[T]) Capacity() int {
	return cap(l.slots)
}

// Reserve grows the backing store so it can hold at least n slots without
// reallocating. It never shrinks the store and never changes contents.
func (l *List[T]) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative reserve %d", ErrInvalidArgument, n)
	}

	if n > len(l.slots) {
		l.slots = slices.Grow(l.slots, n-len(l.slots))
	}

	return nil
}

// Generation returns a counter bumped by every restructuring
// ([List.Compact], [List.Clear], [List.InsertAt]). Positions obtained under
// an older generation are stale.
func (l *List[T]) Generation() uint64 {
	return l.generation
}

// HoleThreshold returns the automatic compaction threshold (0 = disabled).
func (l *List[T]) HoleThreshold() int {
	return l.holeThreshold
}

// SetHoleThreshold changes the automatic compaction threshold. The new
// value is checked on the next removal; setting it never compacts by
// itself.
func (l *List[T]) SetHoleThreshold(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative hole threshold %d", ErrInvalidArgument, n)
	}

	l.holeThreshold = n

	return nil
}

// Add stores v and returns its position. A freed position is reused
// (most recently freed first) before the backing store grows. Positions of
// other elements are unaffected.
//
// Returns [ErrInvalidArgument] if v is a nil pointer, interface, map, chan
// or func.
func (l *List[T]) Add(v T) (int, error) {
	if isNil(v) {
		return -1, fmt.Errorf("%w: cannot add nil value", ErrInvalidArgument)
	}

	l.mods++

	if n := len(l.free); n > 0 {
		pos := l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[pos] = Occupied(v)

		return pos, nil
	}

	l.slots = append(l.slots, Occupied(v))

	return len(l.slots) - 1, nil
}

// InsertAt compacts the list and inserts v at pos, shifting later elements
// up by one. pos must be in [0, Len()].
//
// InsertAt is O(n) and invalidates every outstanding position. Prefer
// [List.Add] unless the order of live elements matters.
func (l *List[T]) InsertAt(pos int, v T) error {
	if isNil(v) {
		return fmt.Errorf("%w: cannot insert nil value", ErrInvalidArgument)
	}

	if pos < 0 || pos > l.Len() {
		return fmt.Errorf("%w: insert position %d (len %d)", ErrOutOfRange, pos, l.Len())
	}

	l.Compact()
	l.slots = slices.Insert(l.slots, pos, Occupied(v))

	return nil
}

// RemoveAt removes the element at pos.
//
// Removing the last slot truncates the store. Any other position becomes a
// hole that the next [List.Add] reuses. After either kind of removal the
// list compacts itself if it holds more holes than the hole threshold.
//
// Returns [ErrOutOfRange] if pos is outside [0, LenWithHoles()) and
// [ErrNotFound] if pos is already a hole.
func (l *List[T]) RemoveAt(pos int) error {
	if err := l.checkLive(pos); err != nil {
		return err
	}

	l.removeAt(pos)

	return nil
}

// removeAt removes a live position. It reports whether the removal
// triggered compaction.
func (l *List[T]) removeAt(pos int) bool {
	l.mods++
	l.slots[pos] = Slot[T]{}

	if pos == len(l.slots)-1 {
		l.slots = l.slots[:pos]
	} else {
		l.free = append(l.free, pos)
	}

	// Checked after truncation too: a lowered threshold may already be
	// exceeded by the holes left below the last slot.
	if l.exceedsThreshold() {
		l.Compact()

		return true
	}

	return false
}

func (l *List[T]) exceedsThreshold() bool {
	return l.holeThreshold != 0 && len(l.free) > l.holeThreshold
}

// RemoveFunc removes the first live element (in ascending position order)
// for which match returns true. It reports whether an element was removed.
func (l *List[T]) RemoveFunc(match func(T) bool) bool {
	pos := l.IndexFunc(match)
	if pos < 0 {
		return false
	}

	l.removeAt(pos)

	return true
}

// RemoveValue removes the first live element equal to v and reports
// whether one was found.
func RemoveValue[T comparable](l *List[T], v T) bool {
	return l.RemoveFunc(func(e T) bool { return e == v })
}

// Get returns the value at pos. ok is false if pos is a hole.
//
// Returns [ErrOutOfRange] if pos is outside [0, LenWithHoles()).
func (l *List[T]) Get(pos int) (v T, ok bool, err error) {
	slot, err := l.At(pos)
	if err != nil {
		return v, false, err
	}

	v, ok = slot.Value()

	return v, ok, nil
}

// At returns the slot at pos, which may be empty.
//
// Returns [ErrOutOfRange] if pos is outside [0, LenWithHoles()).
func (l *List[T]) At(pos int) (Slot[T], error) {
	if err := l.checkRange(pos); err != nil {
		return Slot[T]{}, err
	}

	return l.slots[pos], nil
}

// Set overwrites the live element at pos with v. Holes belong to the free
// stack and cannot be filled with Set; use [List.Add].
//
// Returns [ErrInvalidArgument] for a nil value, [ErrOutOfRange] if pos is
// outside [0, LenWithHoles()) and [ErrNotFound] if pos is a hole.
func (l *List[T]) Set(pos int, v T) error {
	if isNil(v) {
		return fmt.Errorf("%w: cannot set nil value", ErrInvalidArgument)
	}

	if err := l.checkLive(pos); err != nil {
		return err
	}

	l.slots[pos] = Occupied(v)

	return nil
}

// IndexFunc returns the position of the first live element satisfying
// match, or -1.
func (l *List[T]) IndexFunc(match func(T) bool) int {
	for pos, slot := range l.slots {
		if slot.occupied && match(slot.value) {
			return pos
		}
	}

	return -1
}

// Index returns the position of the first live element equal to v, or -1.
func Index[T comparable](l *List[T], v T) int {
	return l.IndexFunc(func(e T) bool { return e == v })
}

// Contains reports whether a live element equal to v exists.
func Contains[T comparable](l *List[T], v T) bool {
	return Index(l, v) >= 0
}

// Clear removes every element and hole. Capacity is retained.
func (l *List[T]) Clear() {
	clear(l.slots)

	l.slots = l.slots[:0]
	l.free = l.free[:0]
	l.generation++
	l.mods++
}

// AppendTo appends the live elements in position order to dst and returns
// the extended slice.
func (l *List[T]) AppendTo(dst []T) []T {
	dst = slices.Grow(dst, l.Len())

	for _, slot := range l.slots {
		if slot.occupied {
			dst = append(dst, slot.value)
		}
	}

	return dst
}

// Clone returns an independent copy with the same positions, holes, free
// stack order and threshold. The copy starts at generation 0. Elements are
// copied shallowly.
func (l *List[T]) Clone() *List[T] {
	return &List[T]{
		slots:         slices.Clone(l.slots),
		free:          slices.Clone(l.free),
		holeThreshold: l.holeThreshold,
	}
}

func (l *List[T]) checkRange(pos int) error {
	if pos < 0 || pos >= len(l.slots) {
		return fmt.Errorf("%w: position %d (len with holes %d)", ErrOutOfRange, pos, len(l.slots))
	}

	return nil
}

func (l *List[T]) checkLive(pos int) error {
	if err := l.checkRange(pos); err != nil {
		return err
	}

	if !l.slots[pos].occupied {
		return fmt.Errorf("%w: position %d is a hole", ErrNotFound, pos)
	}

	return nil
}
