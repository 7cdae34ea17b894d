// Package model provides a deliberately simple, in-memory state model of
// slotlist's publicly observable behavior.
//
// The model favors clarity over performance: counts are recomputed by
// scanning, compaction rebuilds the store, and nothing is cached. Positions,
// holes and the free stack order are observable through the real API, so
// the model tracks them exactly.
package model

import (
	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// Cell is one position of the backing store.
type Cell[T comparable] struct {
	Value T
	Live  bool
}

// ListModel mirrors a slotlist.List.
type ListModel[T comparable] struct {
	Cells         []Cell[T]
	Free          []int
	HoleThreshold int
	Generation    uint64
}

// New returns an empty model with the given threshold.
func New[T comparable](opts slotlist.Options) (*ListModel[T], error) {
	if opts.Capacity < 0 || opts.HoleThreshold < 0 {
		return nil, slotlist.ErrInvalidArgument
	}

	return &ListModel[T]{HoleThreshold: opts.HoleThreshold}, nil
}

// Clone makes a deep copy so metamorphic tests can fork the same state.
// It preserves the nil vs empty slice distinction.
func (m *ListModel[T]) Clone() *ListModel[T] {
	if m == nil {
		return nil
	}

	clone := *m

	if m.Cells != nil {
		clone.Cells = append([]Cell[T]{}, m.Cells...)
	}

	if m.Free != nil {
		clone.Free = append([]int{}, m.Free...)
	}

	return &clone
}

// Len counts live cells.
func (m *ListModel[T]) Len() int {
	count := 0

	for _, cell := range m.Cells {
		if cell.Live {
			count++
		}
	}

	return count
}

// LenWithHoles returns the number of cells.
func (m *ListModel[T]) LenWithHoles() int {
	return len(m.Cells)
}

// Add reuses the most recently freed position or appends.
func (m *ListModel[T]) Add(v T) int {
	if len(m.Free) > 0 {
		pos := m.Free[len(m.Free)-1]
		m.Free = m.Free[:len(m.Free)-1]
		m.Cells[pos] = Cell[T]{Value: v, Live: true}

		return pos
	}

	m.Cells = append(m.Cells, Cell[T]{Value: v, Live: true})

	return len(m.Cells) - 1
}

// InsertAt compacts, then inserts v at pos among the live values.
func (m *ListModel[T]) InsertAt(pos int, v T) error {
	if pos < 0 || pos > m.Len() {
		return slotlist.ErrOutOfRange
	}

	m.Compact()

	cells := make([]Cell[T], 0, len(m.Cells)+1)
	cells = append(cells, m.Cells[:pos]...)
	cells = append(cells, Cell[T]{Value: v, Live: true})
	cells = append(cells, m.Cells[pos:]...)
	m.Cells = cells

	return nil
}

// RemoveAt truncates the last cell or turns pos into a tracked hole, then
// applies the threshold rule.
func (m *ListModel[T]) RemoveAt(pos int) error {
	if pos < 0 || pos >= len(m.Cells) {
		return slotlist.ErrOutOfRange
	}

	if !m.Cells[pos].Live {
		return slotlist.ErrNotFound
	}

	if pos == len(m.Cells)-1 {
		m.Cells = m.Cells[:pos]
	} else {
		m.Cells[pos] = Cell[T]{}
		m.Free = append(m.Free, pos)
	}

	if m.HoleThreshold > 0 && len(m.Free) > m.HoleThreshold {
		m.Compact()
	}

	return nil
}

// RemoveValue removes the first live cell equal to v.
func (m *ListModel[T]) RemoveValue(v T) bool {
	for pos, cell := range m.Cells {
		if cell.Live && cell.Value == v {
			_ = m.RemoveAt(pos)

			return true
		}
	}

	return false
}

// Get returns the cell value at pos.
func (m *ListModel[T]) Get(pos int) (T, bool, error) {
	var zero T

	if pos < 0 || pos >= len(m.Cells) {
		return zero, false, slotlist.ErrOutOfRange
	}

	cell := m.Cells[pos]
	if !cell.Live {
		return zero, false, nil
	}

	return cell.Value, true, nil
}

// Set overwrites a live cell.
func (m *ListModel[T]) Set(pos int, v T) error {
	if pos < 0 || pos >= len(m.Cells) {
		return slotlist.ErrOutOfRange
	}

	if !m.Cells[pos].Live {
		return slotlist.ErrNotFound
	}

	m.Cells[pos].Value = v

	return nil
}

// Compact keeps live cells in order and forgets the free stack.
func (m *ListModel[T]) Compact() {
	var live []Cell[T]

	for _, cell := range m.Cells {
		if cell.Live {
			live = append(live, cell)
		}
	}

	m.Cells = live
	m.Free = nil
	m.Generation++
}

// Clear drops all cells.
func (m *ListModel[T]) Clear() {
	m.Cells = nil
	m.Free = nil
	m.Generation++
}

// Values returns live values in position order.
func (m *ListModel[T]) Values() []T {
	var out []T

	for _, cell := range m.Cells {
		if cell.Live {
			out = append(out, cell.Value)
		}
	}

	return out
}

// RemoveWhere removes every live cell matching pred in ascending order the
// way an iterator with RemoveCurrent would, and returns the removed values.
//
// A compaction in the middle of the walk renumbers the cells; the walk
// resumes at the first cell that followed the removed one.
func (m *ListModel[T]) RemoveWhere(pred func(T) bool) []T {
	var removed []T

	for pos := 0; pos < len(m.Cells); pos++ {
		cell := m.Cells[pos]
		if !cell.Live || !pred(cell.Value) {
			continue
		}

		liveBefore := 0

		for _, c := range m.Cells[:pos] {
			if c.Live {
				liveBefore++
			}
		}

		generation := m.Generation
		_ = m.RemoveAt(pos)
		removed = append(removed, cell.Value)

		if m.Generation != generation {
			pos = liveBefore - 1
		}
	}

	return removed
}
