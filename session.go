package opendi

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pavanmanishd/opendi/arena"
	"github.com/pavanmanishd/opendi/calculus"
	"github.com/pavanmanishd/opendi/linalg"
)

// ErrClosed is returned by Session methods after Close.
var ErrClosed = errors.New("opendi: session closed")

// Session owns one arena and runs operations against it.
// Like the arena, a Session is not safe for concurrent use.
type Session struct {
	arena  *arena.Arena
	logger *slog.Logger
	ops    uint64
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	logger    *slog.Logger
	arenaOpts []arena.Option
}

// WithLogger sets the session logger. It is also handed to the arena and to
// Integrate. A nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithArenaOptions passes options through to arena.New.
func WithArenaOptions(opts ...arena.Option) Option {
	return func(c *sessionConfig) {
		c.arenaOpts = append(c.arenaOpts, opts...)
	}
}

// NewSession creates a session with an arena of capacity bytes.
func NewSession(capacity int, opts ...Option) (*Session, error) {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	arenaOpts := append([]arena.Option{arena.WithLogger(cfg.logger)}, cfg.arenaOpts...)
	a, err := arena.New(capacity, arenaOpts...)
	if err != nil {
		return nil, fmt.Errorf("opendi: create session: %w", err)
	}

	return &Session{arena: a, logger: cfg.logger}, nil
}

// VecAdd returns v1 + v2, allocated in the session arena. The view goes
// stale when the session is reset or closed.
func (s *Session) VecAdd(v1, v2 []float64) (arena.Slice[float64], error) {
	return s.vector("vecadd", len(v1), func(alloc linalg.Allocator) (arena.Slice[float64], error) {
		return linalg.Add(alloc, v1, v2)
	})
}

// VecScale returns v * k, allocated in the session arena.
func (s *Session) VecScale(v []float64, k float64) (arena.Slice[float64], error) {
	return s.vector("vecscale", len(v), func(alloc linalg.Allocator) (arena.Slice[float64], error) {
		return linalg.Scale(alloc, v, k)
	})
}

// VecCross returns the cross product v1 × v2, allocated in the session arena.
func (s *Session) VecCross(v1, v2 []float64) (arena.Slice[float64], error) {
	return s.vector("veccross", 3, func(alloc linalg.Allocator) (arena.Slice[float64], error) {
		return linalg.Cross(alloc, v1, v2)
	})
}

// Sample evaluates f on n evenly spaced points in [xmin, xmax], storing the
// grid and values in the session arena.
func (s *Session) Sample(f calculus.Func, xmin, xmax float64, n int) (calculus.Samples, error) {
	if s.arena.Destroyed() {
		return calculus.Samples{}, ErrClosed
	}
	samples, err := calculus.Sample(s.arena, f, xmin, xmax, n)
	s.record("sample", n, err)
	return samples, err
}

// Integrate runs calculus.Integrate with the session logger. Options given
// here override the defaults.
func (s *Session) Integrate(f calculus.Func, a, b float64, opts ...calculus.Option) calculus.Result {
	opts = append([]calculus.Option{calculus.WithLogger(s.logger)}, opts...)
	res := calculus.Integrate(f, a, b, opts...)
	s.ops++
	s.logger.Debug("integrate",
		"a", a,
		"b", b,
		"value", res.Value,
		"levels", res.Levels,
		"converged", res.Converged,
	)
	return res
}

func (s *Session) vector(op string, length int, fn func(linalg.Allocator) (arena.Slice[float64], error)) (arena.Slice[float64], error) {
	if s.arena.Destroyed() {
		return arena.Slice[float64]{}, ErrClosed
	}
	out, err := fn(s.arena)
	s.record(op, length, err)
	return out, err
}

func (s *Session) record(op string, length int, err error) {
	s.ops++
	switch {
	case err == nil:
		s.logger.Debug(op,
			"length", length,
			"in_use", s.arena.SizeInUse(),
		)
	case errors.Is(err, arena.ErrExhausted):
		s.logger.Warn("session arena exhausted",
			"op", op,
			"length", length,
			"in_use", s.arena.SizeInUse(),
			"capacity", s.arena.Capacity(),
		)
	default:
		s.logger.Debug(op+" failed",
			"length", length,
			"error", err,
		)
	}
}

// Operations returns the number of operations run since the session was
// created, including failed ones.
func (s *Session) Operations() uint64 {
	return s.ops
}

// Metrics returns a snapshot of the session arena.
func (s *Session) Metrics() arena.Metrics {
	return s.arena.Metrics()
}

// Arena returns the session arena.
func (s *Session) Arena() *arena.Arena {
	return s.arena
}

// Reset releases every vector the session has produced and keeps the arena
// for reuse. Views returned earlier become stale.
func (s *Session) Reset() error {
	if err := s.arena.Reset(); err != nil {
		if errors.Is(err, arena.ErrDestroyed) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Close destroys the session arena and makes every view it produced stale.
// Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.arena.Destroyed() {
		return nil
	}
	m := s.arena.Metrics()
	s.logger.Debug("session closed",
		"operations", s.ops,
		"peak", m.Peak,
		"failed_pushes", m.FailedPushes,
	)
	return s.arena.Destroy()
}
