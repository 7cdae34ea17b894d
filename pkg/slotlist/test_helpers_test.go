package slotlist_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// newList returns an empty string list with the given hole threshold.
func newList(t *testing.T, threshold int) *slotlist.List[string] {
	t.Helper()

	list, err := slotlist.New[string](slotlist.Options{HoleThreshold: threshold})
	require.NoError(t, err, "New should accept valid options")

	return list
}

// newListWith returns a list holding values at positions 0..n-1.
func newListWith(t *testing.T, threshold int, values ...string) *slotlist.List[string] {
	t.Helper()

	list := newList(t, threshold)

	for i, v := range values {
		pos, err := list.Add(v)
		require.NoError(t, err, "Add(%q)", v)
		require.Equal(t, i, pos, "Add(%q) should append", v)
	}

	return list
}

// rawSlots renders the backing store with holes as "_".
func rawSlots(t *testing.T, list *slotlist.List[string]) []string {
	t.Helper()

	out := make([]string, 0, list.LenWithHoles())

	for pos := range list.LenWithHoles() {
		v, ok, err := list.Get(pos)
		require.NoError(t, err, "Get(%d) within LenWithHoles", pos)

		if !ok {
			v = "_"
		}

		out = append(out, v)
	}

	return out
}

func values(list *slotlist.List[string]) []string {
	return slices.Collect(list.Values())
}

// requireConsistent asserts the free stack invariant and the count formula.
func requireConsistent(t *testing.T, list *slotlist.List[string]) {
	t.Helper()

	require.NoError(t, list.CheckInvariants(), "invariants")
	require.Equal(t, list.LenWithHoles()-list.Holes(), list.Len(), "Len == LenWithHoles - Holes")
	require.Len(t, values(list), list.Len(), "iteration yields Len values")
}
