package slotlist

import "reflect"

// DefaultHoleThreshold is the hole count [DefaultOptions] tolerates before
// the list compacts itself.
const DefaultHoleThreshold = 256

// Options configure a new [List].
//
// The zero value is valid: no pre-reserved capacity and automatic
// compaction disabled.
type Options struct {
	// Capacity pre-reserves room in the backing store. It is a hint and
	// never affects contents.
	Capacity int

	// HoleThreshold compacts the list once a removal leaves more than this
	// many holes. 0 disables automatic compaction.
	HoleThreshold int
}

// DefaultOptions returns options with [DefaultHoleThreshold] set.
func DefaultOptions() Options {
	return Options{HoleThreshold: DefaultHoleThreshold}
}

// Slot is one cell of the backing store. It is either occupied by a value
// or empty (a hole).
//
// The zero Slot is empty, so the empty state is never confused with a
// stored zero value.
type Slot[T any] struct {
	value    T
	occupied bool
}

// Occupied returns a slot holding v.
func Occupied[T any](v T) Slot[T] {
	return Slot[T]{value: v, occupied: true}
}

// Value returns the stored value and true, or the zero value and false for
// a hole.
func (s Slot[T]) Value() (T, bool) {
	return s.value, s.occupied
}

// IsEmpty reports whether the slot is a hole.
func (s Slot[T]) IsEmpty() bool {
	return !s.occupied
}

// isNil reports whether v is the nil value of a nillable kind. Those are
// the values a List refuses to store. Slices are not included: a nil slice
// is a usable empty slice.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
