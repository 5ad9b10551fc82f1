// Package arena implements a fixed-capacity bump allocator (memory arena) for
// the outputs of numerical operations.
//
// # Overview
//
// An arena reserves one contiguous block up front and serves every request by
// advancing a single offset through it. There is no free list and no
// per-allocation metadata, so a push is O(1) with deterministic latency, and
// results produced together sit next to each other in memory. Individual
// allocations are never freed: the whole arena is reset or destroyed at once.
//
// # Basic Usage
//
//	a, err := arena.New(4096)
//	if err != nil {
//		return err
//	}
//	defer a.Destroy()
//
//	// Raw bytes
//	buf, err := a.Push(64)
//	if errors.Is(err, arena.ErrExhausted) {
//		// recoverable: fall back, or reset and retry
//	}
//
//	// Typed values
//	v, err := arena.PushSlice[float64](a, 3)
//	copy(v.Get(), []float64{1, 2, 3})
//
// # Exhaustion
//
// The capacity is fixed. A Push that does not fit returns ErrExhausted and
// leaves the arena untouched; it never truncates or grows the block. Every
// call site must check the error before using the buffer.
//
// # Lifetimes
//
// Push returns a Buffer (or Slice) view rather than a raw pointer. The view
// remembers the arena generation it was issued in; Reset and Destroy advance
// the generation, after which the view reports ErrStale and yields nil.
// Slices obtained from a view are plain Go slices and must not be kept past
// the arena's next Reset or Destroy.
//
// # Thread Safety
//
// Arena is not thread-safe. Use one arena per goroutine, or SafeArena:
//
//	s, _ := arena.NewSafe(1 << 16)
//	defer s.Destroy()
//	v, err := arena.SafePushSlice[float64](s, 8)
//
// # Backing Memory
//
// By default the block comes from the Go heap. WithMmap requests an anonymous
// private mapping instead, which Destroy returns to the operating system.
// WithBudget charges the capacity against a Budget shared by several arenas,
// so creation fails with ErrBudgetExceeded instead of overcommitting.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Peak: %d of %d bytes\n", m.Peak, m.Capacity)
//
// Package arenaprom exports the same figures to Prometheus.
package arena
