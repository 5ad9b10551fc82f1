package arena_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/opendi/arena"
)

// TestEdgeCases covers capacity, alignment and lifetime edge cases.
func TestEdgeCases(t *testing.T) {
	t.Run("CapacityBounds", func(t *testing.T) {
		testCases := []struct {
			capacity int
			wantErr  bool
		}{
			{0, true},
			{-1, true},
			{-1000, true},
			{1, false},
			{arena.MaxCapacity + 1, true},
		}

		for _, tc := range testCases {
			a, err := arena.New(tc.capacity)
			if tc.wantErr {
				if !errors.Is(err, arena.ErrInvalidCapacity) {
					t.Errorf("New(%d): err = %v, want ErrInvalidCapacity", tc.capacity, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("New(%d): unexpected error %v", tc.capacity, err)
				continue
			}
			a.Destroy()
		}
	})

	t.Run("OneByteArena", func(t *testing.T) {
		a, err := arena.New(1)
		require.NoError(t, err)
		defer a.Destroy()

		b, err := a.Push(1)
		require.NoError(t, err)
		assert.Len(t, b.Bytes(), 1)

		_, err = a.Push(1)
		assert.ErrorIs(t, err, arena.ErrExhausted)

		_, err = arena.PushSlice[float64](a, 1)
		assert.ErrorIs(t, err, arena.ErrExhausted)
	})

	t.Run("HugeRequest", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		defer a.Destroy()

		_, err = a.Push(math.MaxInt)
		assert.ErrorIs(t, err, arena.ErrExhausted)
		assert.Equal(t, 0, a.SizeInUse())
	})

	t.Run("AlignmentAfterOddSizes", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		defer a.Destroy()

		for _, n := range []int{1, 3, 5, 7} {
			_, err := arena.PushSlice[int8](a, n)
			require.NoError(t, err)
			v, err := arena.PushSlice[float64](a, 1)
			require.NoError(t, err)
			addr := uintptr(unsafe.Pointer(&v.Get()[0]))
			if addr%8 != 0 {
				t.Errorf("float64 after %d bytes not aligned: %x", n, addr)
			}
		}
	})

	t.Run("UseAfterDestroy", func(t *testing.T) {
		a, err := arena.New(1024)
		require.NoError(t, err)
		v, err := arena.PushSlice[float64](a, 2)
		require.NoError(t, err)
		require.NoError(t, a.Destroy())

		checks := map[string]error{
			"Push":            func() error { _, err := a.Push(8); return err }(),
			"PushSlice":       func() error { _, err := arena.PushSlice[float64](a, 1); return err }(),
			"PushSliceZeroed": func() error { _, err := arena.PushSliceZeroed[float64](a, 1); return err }(),
			"PushFloat64s":    func() error { _, err := a.PushFloat64s(1); return err }(),
			"Reset":           a.Reset(),
		}
		for name, err := range checks {
			if !errors.Is(err, arena.ErrDestroyed) {
				t.Errorf("%s after Destroy: err = %v, want ErrDestroyed", name, err)
			}
		}
		assert.Nil(t, v.Get())
		assert.ErrorIs(t, v.Err(), arena.ErrStale)
	})

	t.Run("StaleAcrossManyResets", func(t *testing.T) {
		a, err := arena.New(64)
		require.NoError(t, err)
		defer a.Destroy()

		var views []arena.Slice[float64]
		for i := 0; i < 10; i++ {
			v, err := arena.PushSlice[float64](a, 1)
			require.NoError(t, err)
			views = append(views, v)
			require.NoError(t, a.Reset())
		}
		for i, v := range views {
			if v.Valid() {
				t.Errorf("view %d still valid after reset", i)
			}
		}
	})
}

// TestMemoryCorruption checks that regions never alias each other.
func TestMemoryCorruption(t *testing.T) {
	a, err := arena.New(100 * 64)
	require.NoError(t, err)
	defer a.Destroy()

	views := make([]arena.Slice[uint8], 100)
	for i := range views {
		views[i], err = arena.PushSlice[uint8](a, 64)
		require.NoError(t, err)
		copy(views[i].Get(), bytes.Repeat([]byte{byte(i)}, 64))
	}

	for i, v := range views {
		for j, b := range v.Get() {
			if b != byte(i) {
				t.Fatalf("Memory corruption detected at view[%d][%d]: got %d, want %d", i, j, b, byte(i))
			}
		}
	}
}

func TestArenaLogging(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := arena.New(16, arena.WithLogger(logger), arena.WithName("logged"))
	require.NoError(t, err)
	_, err = a.Push(32)
	require.ErrorIs(t, err, arena.ErrExhausted)
	require.NoError(t, a.Destroy())

	logs := out.String()
	assert.True(t, strings.Contains(logs, "arena created"), logs)
	assert.True(t, strings.Contains(logs, "arena exhausted"), logs)
	assert.True(t, strings.Contains(logs, "arena destroyed"), logs)
	assert.True(t, strings.Contains(logs, "name=logged"), logs)
}
