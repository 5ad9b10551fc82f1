package arena

import (
	"fmt"
	"math"
	"unsafe"
)

// Scalar lists the element types a Slice may hold. They contain no Go
// pointers, so arena memory never hides references from the garbage
// collector, and none needs more than Alignment bytes of alignment.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// PushSlice reserves exactly n*sizeof(T) bytes and returns them as a Slice.
// The elements are not initialized.
func PushSlice[T Scalar](a *Arena, n int) (Slice[T], error) {
	size, err := sliceBytes[T](n)
	if err != nil {
		return Slice[T]{}, err
	}
	b, err := a.Push(size)
	if err != nil {
		return Slice[T]{}, err
	}
	return Slice[T]{buf: b, n: n}, nil
}

// PushSliceZeroed is PushSlice with the elements set to zero.
// Memory reused after Reset otherwise still holds earlier values.
func PushSliceZeroed[T Scalar](a *Arena, n int) (Slice[T], error) {
	s, err := PushSlice[T](a, n)
	if err != nil {
		return s, err
	}
	clear(s.Get())
	return s, nil
}

// PushFloat64s is PushSlice[float64] as a method, so that *Arena satisfies
// allocator interfaces such as linalg.Allocator.
func (a *Arena) PushFloat64s(n int) (Slice[float64], error) {
	return PushSlice[float64](a, n)
}

func sliceBytes[T Scalar](n int) (int, error) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if n < 0 || (n > 0 && elem > math.MaxInt/n) {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrInvalidSize, n, elem)
	}
	return elem * n, nil
}
