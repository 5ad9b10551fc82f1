package linalg

import (
	"errors"
	"fmt"
	"math"

	"github.com/pavanmanishd/opendi/arena"
)

// ErrDimensionMismatch is returned when operand lengths do not fit the
// operation.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// Allocator supplies a view of n float64 values. *arena.Arena and
// *arena.SafeArena implement it.
type Allocator interface {
	PushFloat64s(n int) (arena.Slice[float64], error)
}

type heap struct{}

// PushFloat64s backs each request with its own exactly sized arena that is
// never reset, so the view stays valid for as long as it is referenced.
func (heap) PushFloat64s(n int) (arena.Slice[float64], error) {
	const elem = 8
	if n < 0 || n > arena.MaxCapacity/elem {
		return arena.Slice[float64]{}, fmt.Errorf("%w: %d elements", arena.ErrInvalidSize, n)
	}
	a, err := arena.New(max(n*elem, arena.Alignment))
	if err != nil {
		return arena.Slice[float64]{}, err
	}
	return a.PushFloat64s(n)
}

// Heap allocates results on the Go heap. Its views never go stale.
var Heap Allocator = heap{}

// Add returns the element-wise sum v1 + v2.
func Add(alloc Allocator, v1, v2 []float64) (arena.Slice[float64], error) {
	if len(v1) != len(v2) {
		return arena.Slice[float64]{}, fmt.Errorf("%w: add %d and %d", ErrDimensionMismatch, len(v1), len(v2))
	}
	s, err := alloc.PushFloat64s(len(v1))
	if err != nil {
		return arena.Slice[float64]{}, err
	}
	out := s.Get()
	for i := range out {
		out[i] = v1[i] + v2[i]
	}
	return s, nil
}

// Scale returns v multiplied by k.
func Scale(alloc Allocator, v []float64, k float64) (arena.Slice[float64], error) {
	s, err := alloc.PushFloat64s(len(v))
	if err != nil {
		return arena.Slice[float64]{}, err
	}
	out := s.Get()
	for i := range out {
		out[i] = v[i] * k
	}
	return s, nil
}

// Cross returns the cross product v1 × v2 of two 3-vectors.
func Cross(alloc Allocator, v1, v2 []float64) (arena.Slice[float64], error) {
	if len(v1) != 3 || len(v2) != 3 {
		return arena.Slice[float64]{}, fmt.Errorf("%w: cross needs 3-vectors, got %d and %d", ErrDimensionMismatch, len(v1), len(v2))
	}
	s, err := alloc.PushFloat64s(3)
	if err != nil {
		return arena.Slice[float64]{}, err
	}
	out := s.Get()
	out[0] = v1[1]*v2[2] - v1[2]*v2[1]
	out[1] = v1[2]*v2[0] - v1[0]*v2[2]
	out[2] = v1[0]*v2[1] - v1[1]*v2[0]
	return s, nil
}

// Dot returns the inner product of v1 and v2.
func Dot(v1, v2 []float64) (float64, error) {
	if len(v1) != len(v2) {
		return 0, fmt.Errorf("%w: dot %d and %d", ErrDimensionMismatch, len(v1), len(v2))
	}
	var sum float64
	for i := range v1 {
		sum += v1[i] * v2[i]
	}
	return sum, nil
}

// Norm returns the Euclidean length of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
