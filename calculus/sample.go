package calculus

import (
	"errors"
	"fmt"

	"github.com/pavanmanishd/opendi/arena"
)

// ErrTooFewPoints is returned by Sample when fewer than two points are
// requested.
var ErrTooFewPoints = errors.New("calculus: sampling needs at least two points")

// Allocator supplies storage for sampled values. *arena.Arena, *arena.SafeArena
// and linalg.Heap satisfy it.
type Allocator interface {
	PushFloat64s(n int) (arena.Slice[float64], error)
}

// Samples holds f evaluated on an evenly spaced grid. X and Y are views into
// the allocator's memory and go stale with it.
type Samples struct {
	X, Y       arena.Slice[float64]
	YMin, YMax float64
}

// Sample evaluates f at n evenly spaced points from xmin to xmax inclusive,
// storing the grid and the values in views obtained from alloc. It is the
// numeric half of plotting a function: the result carries everything a
// renderer needs to size its axes.
func Sample(alloc Allocator, f Func, xmin, xmax float64, n int) (Samples, error) {
	if n < 2 {
		return Samples{}, fmt.Errorf("%w: %d", ErrTooFewPoints, n)
	}

	xv, err := alloc.PushFloat64s(n)
	if err != nil {
		return Samples{}, fmt.Errorf("calculus: sample x: %w", err)
	}
	yv, err := alloc.PushFloat64s(n)
	if err != nil {
		return Samples{}, fmt.Errorf("calculus: sample y: %w", err)
	}

	xs, ys := xv.Get(), yv.Get()
	step := (xmax - xmin) / float64(n-1)
	s := Samples{X: xv, Y: yv}
	for i := range n {
		x := xmin + float64(i)*step
		y := f(x)
		xs[i], ys[i] = x, y
		if i == 0 || y < s.YMin {
			s.YMin = y
		}
		if i == 0 || y > s.YMax {
			s.YMax = y
		}
	}
	return s, nil
}
