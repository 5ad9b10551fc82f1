// Package scalar provides arithmetic over sequences of float64 values and a
// few single-value helpers.
//
// Folds over an empty sequence return the identity of their operation where
// one exists. Min and Max of nothing are undefined and return NaN.
package scalar

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned by Quotient when a divisor is zero.
var ErrDivisionByZero = errors.New("scalar: division by zero")

// Sum returns the sum of xs, or 0 for an empty sequence.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Difference returns xs[0] minus every following value, or 0 for an empty
// sequence.
func Difference(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	d := xs[0]
	for _, x := range xs[1:] {
		d -= x
	}
	return d
}

// Product returns the product of xs, or 1 for an empty sequence.
func Product(xs []float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= x
	}
	return p
}

// Quotient divides xs[0] by every following value in turn. An empty sequence
// gives 0. A zero divisor stops the fold with ErrDivisionByZero.
func Quotient(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	q := xs[0]
	for i, x := range xs[1:] {
		if x == 0 {
			return 0, fmt.Errorf("%w: operand %d", ErrDivisionByZero, i+1)
		}
		q /= x
	}
	return q, nil
}

// Min returns the smallest value in xs, or NaN for an empty sequence.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Min(m, x)
	}
	return m
}

// Max returns the largest value in xs, or NaN for an empty sequence.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Max(m, x)
	}
	return m
}

// Abs returns |x|.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Pow returns base raised to exp.
func Pow(base, exp float64) float64 {
	return math.Pow(base, exp)
}

// Mode selects a rounding direction for Round.
type Mode int

const (
	Floor Mode = iota
	Ceil
)

func (m Mode) String() string {
	switch m {
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Round rounds x toward negative infinity (Floor) or positive infinity
// (Ceil). Any other mode returns NaN.
func Round(mode Mode, x float64) float64 {
	switch mode {
	case Floor:
		return math.Floor(x)
	case Ceil:
		return math.Ceil(x)
	default:
		return math.NaN()
	}
}
