// Package calculus provides numerical integration and differentiation of
// scalar functions.
//
// Romberg estimates a definite integral by Richardson extrapolation over a
// table of successively refined trapezoidal estimates. It always returns a
// number: when the requested tolerance is not reached within the allowed
// number of refinement levels, the deepest extrapolated value is returned
// without any signal. Integrate runs the same algorithm and reports the
// levels used, the evaluation count and whether the tolerance was met.
//
// Forward, Backward, Central and Second are finite-difference derivative
// formulas. A zero step yields NaN, which callers detect with math.IsNaN.
//
// Every function here invokes its callback synchronously. Callbacks must be
// pure functions of their argument for the documented accuracy to hold.
package calculus
