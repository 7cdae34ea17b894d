package slotlist

import "errors"

// Sentinel errors returned by slotlist operations.
//
// Returned errors wrap these with context. Use [errors.Is]:
//
//	if errors.Is(err, slotlist.ErrOutOfRange) {
//	    // position is stale, look it up again
//	}
//
// A failed operation never changes the list.
var (
	// ErrInvalidArgument indicates invalid arguments were provided.
	//
	// Common causes: a nil pointer, interface, map, chan or func passed as a
	// value to [List.Add], [List.Set] or [List.InsertAt], negative options,
	// or calling [Iterator.RemoveCurrent] twice for the same element.
	//
	// This is a programming error.
	ErrInvalidArgument = errors.New("slotlist: invalid argument")

	// ErrOutOfRange indicates a position outside [0, LenWithHoles()).
	//
	// Positions held across [List.Compact], [List.Clear] or [List.InsertAt]
	// are stale and commonly end up here.
	//
	// Recovery: look the element up again.
	ErrOutOfRange = errors.New("slotlist: position out of range")

	// ErrNotFound indicates no live element exists at the requested position
	// or matching the requested value.
	//
	// Removing or overwriting a hole returns this error.
	ErrNotFound = errors.New("slotlist: not found")

	// ErrConcurrentModification indicates the list was mutated while an
	// iterator was outstanding.
	//
	// Mutations through [Iterator.RemoveCurrent] are the only ones an
	// iterator tolerates.
	//
	// Recovery: restart iteration with [Iterator.Reset] or a new iterator.
	ErrConcurrentModification = errors.New("slotlist: concurrent modification")

	// ErrCorrupt indicates the free stack and the backing store disagree.
	//
	// Only [List.CheckInvariants] returns it. Seeing it means a bug in this
	// package.
	ErrCorrupt = errors.New("slotlist: corrupt")
)
