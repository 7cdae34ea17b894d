package slotlist_test

import (
	"fmt"

	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

func Example() {
	list, _ := slotlist.New[string](slotlist.Options{HoleThreshold: 1})

	_, _ = list.Add("A")
	_, _ = list.Add("B")
	_, _ = list.Add("C")

	_ = list.RemoveAt(1) // leaves a hole at 1

	pos, _ := list.Add("D") // reuses it
	fmt.Println(pos, list.Len(), list.LenWithHoles())

	for v := range list.Values() {
		fmt.Print(v, " ")
	}

	fmt.Println()

	// Output:
	// 1 3 3
	// A D C
}

func ExampleList_RemoveAt() {
	list, _ := slotlist.New[string](slotlist.Options{HoleThreshold: 1})

	for _, v := range []string{"A", "B", "C"} {
		_, _ = list.Add(v)
	}

	_ = list.RemoveAt(0) // one hole, at the threshold
	_ = list.RemoveAt(1) // two holes, compacts

	fmt.Println(list.LenWithHoles(), list.Holes(), list.Generation())

	// Output:
	// 1 0 1
}

func ExampleIterator_RemoveCurrent() {
	list, _ := slotlist.New[int](slotlist.DefaultOptions())

	for i := range 6 {
		_, _ = list.Add(i)
	}

	it := list.Iter()
	for it.Next() {
		if it.Value()%2 == 0 {
			_ = it.RemoveCurrent()
		}
	}

	fmt.Println(list.AppendTo(nil), it.Err())

	// Output:
	// [1 3 5] <nil>
}
