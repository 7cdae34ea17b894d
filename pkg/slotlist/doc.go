// Package slotlist provides an array-backed list with O(1) insertion and
// O(1) removal that never shifts elements.
//
// Removing an element leaves a hole in the backing store and records its
// position on a free stack. The next [List.Add] reuses the most recently
// freed position before the store grows. Iteration walks the store in
// ascending position order and skips holes.
//
// # Basic Usage
//
//	list, err := slotlist.New[*Entity](slotlist.DefaultOptions())
//	if err != nil {
//	    // only returned for invalid options
//	}
//
//	pos, err := list.Add(entity)  // err is ErrInvalidArgument for nil
//	err = list.RemoveAt(pos)       // leaves a hole, O(1)
//
//	for pos, e := range list.All() {
//	    // holes are never yielded
//	}
//
// # Positions and Generations
//
// Positions returned by [List.Add] stay valid until the slot is removed or
// the list is restructured. [List.Compact], [List.Clear] and [List.InsertAt]
// restructure the list and bump [List.Generation]; every position obtained
// before that is stale. Stale positions never read out of bounds: accesses
// are bounds-checked against the current store and return [ErrOutOfRange].
//
// # Compaction
//
// Holes slow down iteration. [Options.HoleThreshold] bounds them: once a
// removal leaves more holes than the threshold, the list compacts itself.
// Compaction is O(n) and preserves the relative order of live elements.
// A threshold of 0 disables automatic compaction.
//
// # Iteration
//
// Iterators are fail-fast. If the list is mutated by anything other than
// the iterator itself, the next [Iterator.Next] returns false and
// [Iterator.Err] reports [ErrConcurrentModification]. [List.All] and
// [List.Values] panic in the same situation.
//
// # Concurrency
//
// A List is not safe for concurrent use. Guard it with a single mutex if
// it is shared between goroutines.
package slotlist
