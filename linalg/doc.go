// Package linalg implements small dense vector operations whose results are
// written into caller-supplied storage.
//
// Every operation that produces a vector takes an Allocator and returns an
// arena.Slice view. Passing an *arena.Arena places all results of a
// computation in one block that is released at once; passing Heap gives
// views backed by ordinary garbage-collected memory.
//
//	a, _ := arena.New(4096)
//	defer a.Destroy()
//
//	sum, err := linalg.Add(a, []float64{1, 2, 3}, []float64{4, 5, 6})
//	if err != nil {
//		return err // arena.ErrExhausted when the arena is full
//	}
//	fmt.Println(sum.Get())
//
// A view obtained from an arena goes stale when that arena is reset or
// destroyed: Get then returns nil and Err returns arena.ErrStale. Use Clone
// to keep a copy beyond that point.
package linalg
