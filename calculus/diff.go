package calculus

import "math"

// Forward approximates f'(x) by (f(x+h) - f(x)) / h.
// It returns NaN when h is zero.
func Forward(f Func, x, h float64) float64 {
	if h == 0 {
		return math.NaN()
	}
	return (f(x+h) - f(x)) / h
}

// Backward approximates f'(x) by (f(x) - f(x-h)) / h.
// It returns NaN when h is zero.
func Backward(f Func, x, h float64) float64 {
	if h == 0 {
		return math.NaN()
	}
	return (f(x) - f(x-h)) / h
}

// Central approximates f'(x) by (f(x+h) - f(x-h)) / 2h.
// It returns NaN when h is zero.
func Central(f Func, x, h float64) float64 {
	if h == 0 {
		return math.NaN()
	}
	return (f(x+h) - f(x-h)) / (2 * h)
}

// Second approximates f''(x) by (f(x+h) - 2f(x) + f(x-h)) / h².
// It returns NaN when h is zero.
func Second(f Func, x, h float64) float64 {
	if h == 0 {
		return math.NaN()
	}
	return (f(x+h) - 2*f(x) + f(x-h)) / (h * h)
}
