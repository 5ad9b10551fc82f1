package opendi

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/opendi/arena"
	"github.com/pavanmanishd/opendi/calculus"
	"github.com/pavanmanishd/opendi/linalg"
)

func TestSessionVectors(t *testing.T) {
	s, err := NewSession(1024)
	require.NoError(t, err)
	defer s.Close()

	sum, err := s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum.Get())

	scaled, err := s.VecScale(sum.Get(), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 14, 18}, scaled.Get())

	cross, err := s.VecCross([]float64{1, 0, 0}, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, cross.Get())

	m := s.Metrics()
	assert.Equal(t, 72, m.SizeInUse)
	assert.Equal(t, uint64(3), m.Pushes)
	assert.Equal(t, uint64(3), s.Operations())
}

func TestSessionExhaustion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := NewSession(32, WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	_, err = s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	assert.ErrorIs(t, err, arena.ErrExhausted)

	assert.Contains(t, buf.String(), "session arena exhausted")
	assert.Contains(t, buf.String(), "op=vecadd")
	assert.Equal(t, 24, s.Metrics().SizeInUse)
}

func TestSessionDimensionMismatch(t *testing.T) {
	s, err := NewSession(256)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.VecCross([]float64{1, 2}, []float64{3, 4})
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
	assert.Zero(t, s.Metrics().SizeInUse)
}

func TestSessionIntegrate(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewSession(64, WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	res := s.Integrate(math.Sin, 0, math.Pi)
	assert.True(t, res.Converged)
	assert.InDelta(t, 2, res.Value, 1e-9)
	assert.Contains(t, buf.String(), "romberg converged")

	res = s.Integrate(math.Sqrt, 0, 1, calculus.WithMaxLevels(2), calculus.WithTolerance(1e-15))
	assert.False(t, res.Converged)
	assert.Equal(t, 2, res.Levels)
}

func TestSessionSample(t *testing.T) {
	s, err := NewSession(1024)
	require.NoError(t, err)
	defer s.Close()

	samples, err := s.Sample(func(x float64) float64 { return 2 * x }, 0, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, samples.X.Get())
	assert.Equal(t, []float64{0, 1, 2}, samples.Y.Get())
	assert.Equal(t, 48, s.Metrics().SizeInUse)
}

func TestSessionReset(t *testing.T) {
	s, err := NewSession(64)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		_, err := s.VecScale([]float64{1, 2, 3, 4, 5, 6, 7, 8}, float64(i))
		require.NoError(t, err)
		require.NoError(t, s.Reset())
	}
	assert.Zero(t, s.Metrics().SizeInUse)
	assert.Equal(t, uint64(5), s.Metrics().Resets)
}

func TestSessionClose(t *testing.T) {
	s, err := NewSession(64)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.True(t, s.Arena().Destroyed())

	_, err = s.VecAdd([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Sample(math.Sin, 0, 1, 4)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Reset(), ErrClosed)
}

func TestNewSessionInvalidCapacity(t *testing.T) {
	_, err := NewSession(0)
	assert.ErrorIs(t, err, arena.ErrInvalidCapacity)
}

func TestSessionArenaOptions(t *testing.T) {
	budget := arena.NewBudget(100)

	s1, err := NewSession(64, WithArenaOptions(arena.WithBudget(budget), arena.WithName("first")))
	require.NoError(t, err)
	assert.Equal(t, "first", s1.Metrics().Name)

	_, err = NewSession(64, WithArenaOptions(arena.WithBudget(budget)))
	assert.ErrorIs(t, err, arena.ErrBudgetExceeded)

	require.NoError(t, s1.Close())
	s2, err := NewSession(64, WithArenaOptions(arena.WithBudget(budget)))
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestSessionResultsStaleAfterReset(t *testing.T) {
	s, err := NewSession(1024)
	require.NoError(t, err)
	defer s.Close()

	sum, err := s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	samples, err := s.Sample(math.Exp, 0, 1, 4)
	require.NoError(t, err)
	require.NoError(t, s.Reset())

	// The new result occupies the bytes sum used to.
	next, err := s.VecScale([]float64{100, 100, 100}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 100}, next.Get())

	assert.Nil(t, sum.Get())
	assert.ErrorIs(t, sum.Err(), arena.ErrStale)
	assert.Nil(t, samples.X.Get())
	assert.ErrorIs(t, samples.Y.Err(), arena.ErrStale)
}

func TestSessionResultsStaleAfterClose(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"heap", nil},
		{"mmap", []Option{WithArenaOptions(arena.WithMmap())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(4096, tt.opts...)
			if errors.Is(err, arena.ErrMmapUnsupported) {
				t.Skip("mmap not supported on this platform")
			}
			require.NoError(t, err)

			sum, err := s.VecAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
			require.NoError(t, err)
			cross, err := s.VecCross([]float64{1, 0, 0}, []float64{0, 1, 0})
			require.NoError(t, err)
			require.NoError(t, s.Close())

			// Unmapped memory is never touched: the views refuse access.
			assert.Nil(t, sum.Get())
			assert.ErrorIs(t, sum.Err(), arena.ErrStale)
			assert.Nil(t, cross.Clone())
			assert.ErrorIs(t, cross.Err(), arena.ErrStale)
		})
	}
}
