// Package opendi is a small numerical toolkit built around a fixed-capacity
// memory arena.
//
// The building blocks live in subpackages:
//
//   - arena: the bump allocator, its views, budgets and metrics
//   - calculus: Romberg integration, finite differences and sampling
//   - linalg: vector operations writing into an arena or the heap
//   - scalar: arithmetic over sequences of values
//
// A Session ties them together for one computation: every vector it produces
// lives in the session's arena and is released when the session closes.
//
//	s, err := opendi.NewSession(4096, opendi.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	v, err := s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
//	fmt.Println(v.Get()) // nil once the session is reset or closed
//	res := s.Integrate(math.Sin, 0, math.Pi)
package opendi
