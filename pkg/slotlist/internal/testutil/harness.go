package testutil

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/slotlist/pkg/slotlist"
	"github.com/calvinalkan/slotlist/pkg/slotlist/model"
)

// DefaultMaxOps bounds how many operations one run applies.
const DefaultMaxOps = 400

// RunConfig controls how often full state is compared.
type RunConfig struct {
	MaxOps int

	// CompareEveryN compares full snapshots every N ops. Results of every
	// op and invariants are always checked. 0 means only at the end.
	CompareEveryN int
}

// Snapshot is the observable state of a list.
type Snapshot struct {
	Len          int
	LenWithHoles int
	Holes        int
	Generation   uint64
	Cells        []model.Cell[string]
	Free         []int
	Values       []string
}

// SnapshotList captures the observable state of a real list.
func SnapshotList(list *slotlist.List[string]) Snapshot {
	cells := make([]model.Cell[string], 0, list.LenWithHoles())

	for pos := range list.LenWithHoles() {
		slot, _ := list.At(pos)
		v, live := slot.Value()
		cells = append(cells, model.Cell[string]{Value: v, Live: live})
	}

	return Snapshot{
		Len:          list.Len(),
		LenWithHoles: list.LenWithHoles(),
		Holes:        list.Holes(),
		Generation:   list.Generation(),
		Cells:        cells,
		Free:         list.FreePositions(),
		Values:       slices.Collect(list.Values()),
	}
}

// SnapshotModel captures the state of the model in the same shape.
func SnapshotModel(m *model.ListModel[string]) Snapshot {
	return Snapshot{
		Len:          m.Len(),
		LenWithHoles: m.LenWithHoles(),
		Holes:        len(m.Free),
		Generation:   m.Generation,
		Cells:        slices.Clone(m.Cells),
		Free:         slices.Clone(m.Free),
		Values:       m.Values(),
	}
}

// DiffSnapshots returns a cmp diff, treating nil and empty slices alike.
func DiffSnapshots(want, got Snapshot) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// ErrorClass maps err to the slotlist sentinel it wraps, or err itself.
func ErrorClass(err error) error {
	for _, sentinel := range []error{
		slotlist.ErrInvalidArgument,
		slotlist.ErrOutOfRange,
		slotlist.ErrNotFound,
		slotlist.ErrConcurrentModification,
		slotlist.ErrCorrupt,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return err
}

// Run applies ops decoded by gen to a real list and the model and fails
// tb on the first divergence.
func Run(tb testing.TB, opts slotlist.Options, gen *OpGenerator, cfg RunConfig) {
	tb.Helper()

	list, err := slotlist.New[string](opts)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}

	ref, err := model.New[string](opts)
	if err != nil {
		tb.Fatalf("model.New: %v", err)
	}

	maxOps := cfg.MaxOps
	if maxOps <= 0 {
		maxOps = DefaultMaxOps
	}

	var history []Op

	for i := 0; i < maxOps; i++ {
		op, ok := gen.Next(list.LenWithHoles())
		if !ok {
			break
		}

		history = append(history, op)

		if msg := Apply(list, ref, op); msg != "" {
			tb.Fatalf("op #%d %s diverged: %s\nhistory: %v", i, op, msg, history)
		}

		if err := list.CheckInvariants(); err != nil {
			tb.Fatalf("op #%d %s broke invariants: %v\nhistory: %v", i, op, err, history)
		}

		if cfg.CompareEveryN > 0 && (i+1)%cfg.CompareEveryN == 0 {
			compare(tb, list, ref, history)
		}
	}

	compare(tb, list, ref, history)
}

func compare(tb testing.TB, list *slotlist.List[string], ref *model.ListModel[string], history []Op) {
	tb.Helper()

	if diff := DiffSnapshots(SnapshotModel(ref), SnapshotList(list)); diff != "" {
		tb.Fatalf("state mismatch (-model +real):\n%s\nhistory: %v", diff, history)
	}
}

// Apply runs op against both implementations and returns a description of
// the first difference in results, or "".
func Apply(list *slotlist.List[string], ref *model.ListModel[string], op Op) string {
	switch op.Kind {
	case OpAdd:
		pos, err := list.Add(op.Value)
		if err != nil {
			return "Add failed: " + err.Error()
		}

		if want := ref.Add(op.Value); pos != want {
			return cmp.Diff(want, pos)
		}

	case OpInsertAt:
		return diffErr(ref.InsertAt(op.Pos, op.Value), list.InsertAt(op.Pos, op.Value))

	case OpRemoveAt:
		return diffErr(ref.RemoveAt(op.Pos), list.RemoveAt(op.Pos))

	case OpRemoveValue:
		want := ref.RemoveValue(op.Value)
		if got := slotlist.RemoveValue(list, op.Value); got != want {
			return cmp.Diff(want, got)
		}

	case OpGet:
		wantV, wantOK, wantErr := ref.Get(op.Pos)
		gotV, gotOK, gotErr := list.Get(op.Pos)

		if msg := diffErr(wantErr, gotErr); msg != "" {
			return msg
		}

		if diff := cmp.Diff([]any{wantV, wantOK}, []any{gotV, gotOK}); diff != "" {
			return diff
		}

	case OpSet:
		return diffErr(ref.Set(op.Pos, op.Value), list.Set(op.Pos, op.Value))

	case OpCompact:
		ref.Compact()
		list.Compact()

		if list.LenWithHoles() != list.Len() || list.Capacity() != list.Len() {
			return "compaction left holes or slack capacity"
		}

	case OpClear:
		ref.Clear()
		list.Clear()

	case OpReserve:
		before := SnapshotList(list)

		if err := list.Reserve(op.N); err != nil {
			return "Reserve failed: " + err.Error()
		}

		if list.Capacity() < op.N {
			return "Reserve did not grow capacity"
		}

		if diff := DiffSnapshots(before, SnapshotList(list)); diff != "" {
			return "Reserve changed contents: " + diff
		}

	case OpSetThreshold:
		ref.HoleThreshold = op.N

		if err := list.SetHoleThreshold(op.N); err != nil {
			return "SetHoleThreshold failed: " + err.Error()
		}

	case OpRemoveWhere:
		match := func(v string) bool { return strings.HasPrefix(v, op.Value) }
		want := ref.RemoveWhere(match)

		var got []string

		it := list.Iter()
		for it.Next() {
			if v := it.Value(); match(v) {
				if err := it.RemoveCurrent(); err != nil {
					return "RemoveCurrent failed: " + err.Error()
				}

				got = append(got, v)
			}
		}

		if err := it.Err(); err != nil {
			return "iteration failed: " + err.Error()
		}

		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			return diff
		}
	}

	return ""
}

func diffErr(want, got error) string {
	if ErrorClass(want) != ErrorClass(got) {
		return "error mismatch: model=" + errString(want) + " real=" + errString(got)
	}

	return ""
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}

	return err.Error()
}
