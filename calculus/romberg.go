package calculus

import (
	"log/slog"
	"math"
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// MaxLevels bounds the refinement depth. Level i evaluates f at 2^i new
// points, so deeper tables are never practical.
const MaxLevels = 30

// levelCap is the clamp applied to kmax. Tests lower it.
var levelCap = MaxLevels

const (
	// DefaultTolerance is the convergence threshold used by Integrate.
	DefaultTolerance = 1e-10
	// DefaultMaxLevels is the refinement depth used by Integrate.
	DefaultMaxLevels = 20
)

// Result describes one Romberg integration.
type Result struct {
	Value       float64 // best estimate of the integral
	Levels      int     // refinement levels performed
	Evaluations int     // calls made to the integrand
	Converged   bool    // whether |R[i+1] - R_prev[i]| < eps was reached
	Delta       float64 // last difference compared against eps
}

// Romberg estimates the integral of f over [a, b].
//
// Refinement stops as soon as two consecutive highest-order extrapolated
// values differ by less than eps. If that never happens within kmax levels
// the deepest diagonal entry is returned; non-convergence is not reported.
// The estimate is signed: swapping a and b negates it, and a == b gives
// exactly 0 without calling f.
//
// kmax below zero is treated as zero (a single trapezoid); kmax above
// MaxLevels is clamped to MaxLevels.
func Romberg(f Func, a, b, eps float64, kmax int) float64 {
	return romberg(f, a, b, eps, kmax).Value
}

// Integrate runs Romberg with the configured tolerance and depth and returns
// the full Result. Non-convergence is logged at debug level.
func Integrate(f Func, a, b float64, opts ...Option) Result {
	cfg := newConfig(opts)
	res := romberg(f, a, b, cfg.tolerance, cfg.maxLevels)

	if res.Converged {
		cfg.logger.Debug("romberg converged",
			"a", a,
			"b", b,
			"levels", res.Levels,
			"evaluations", res.Evaluations,
			"value", res.Value,
		)
	} else {
		cfg.logger.Debug("romberg did not converge",
			"a", a,
			"b", b,
			"levels", res.Levels,
			"tolerance", cfg.tolerance,
			"delta", res.Delta,
			"value", res.Value,
		)
	}
	return res
}

func romberg(f Func, a, b, eps float64, kmax int) Result {
	if a == b {
		return Result{Converged: true}
	}
	kmax = min(max(kmax, 0), levelCap)

	h := b - a
	// One slack slot past the deepest diagonal entry.
	prev := make([]float64, kmax+2)
	curr := make([]float64, kmax+2)

	prev[0] = h / 2 * (f(a) + f(b))
	res := Result{Evaluations: 2, Delta: math.Inf(1)}

	for i := 0; i < kmax; i++ {
		h /= 2

		n := 1 << i
		var c float64
		for j := 1; j <= n; j++ {
			c += f(a + float64(2*j-1)*h)
		}
		res.Evaluations += n

		curr[0] = 0.5*prev[0] + h*c

		pow4 := 1.0
		for m := 1; m <= i+1; m++ {
			pow4 *= 4
			curr[m] = (pow4*curr[m-1] - prev[m-1]) / (pow4 - 1)
		}

		res.Levels = i + 1
		res.Delta = math.Abs(curr[i+1] - prev[i])
		if res.Delta < eps {
			res.Value = curr[i+1]
			res.Converged = true
			return res
		}

		prev, curr = curr, prev
	}

	res.Value = prev[kmax]
	return res
}

// Option configures Integrate.
type Option func(*config)

type config struct {
	tolerance float64
	maxLevels int
	logger    *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		tolerance: DefaultTolerance,
		maxLevels: DefaultMaxLevels,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithTolerance sets the absolute convergence threshold.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		c.tolerance = eps
	}
}

// WithMaxLevels sets the maximum number of refinement levels.
func WithMaxLevels(k int) Option {
	return func(c *config) {
		c.maxLevels = k
	}
}

// WithLogger sets the logger for convergence reports.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
