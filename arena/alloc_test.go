package arena

import (
	"fmt"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushSlice(t *testing.T) {
	a, err := New(1024)
	require.NoError(t, err)

	s, err := PushSlice[float64](a, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 24, s.Buffer().Len())
	assert.Equal(t, 24, a.SizeInUse(), "3 float64 values consume exactly 24 bytes")

	v := s.Get()
	require.Len(t, v, 3)
	copy(v, []float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2, 3}, s.Get())
}

func TestPushSliceTypes(t *testing.T) {
	a, err := New(4096)
	require.NoError(t, err)

	i8, err := PushSlice[int8](a, 3)
	require.NoError(t, err)
	i32, err := PushSlice[int32](a, 5)
	require.NoError(t, err)
	c128, err := PushSlice[complex128](a, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, i8.Buffer().Len())
	assert.Equal(t, 20, i32.Buffer().Len())
	assert.Equal(t, 32, c128.Buffer().Len())

	for name, p := range map[string]unsafe.Pointer{
		"int8":       unsafe.Pointer(&i8.Get()[0]),
		"int32":      unsafe.Pointer(&i32.Get()[0]),
		"complex128": unsafe.Pointer(&c128.Get()[0]),
	} {
		if uintptr(p)%Alignment != 0 {
			t.Errorf("%s slice not aligned: %p", name, p)
		}
	}
}

func TestPushSliceEmpty(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)

	s, err := PushSlice[float64](a, 0)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.NotNil(t, s.Get())
	assert.Empty(t, s.Get())
	assert.Equal(t, 0, a.SizeInUse())

	_, err = PushSlice[float64](a, -1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestPushSliceOverflow(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)

	_, err = PushSlice[float64](a, math.MaxInt/4)
	assert.ErrorIs(t, err, ErrInvalidSize)
	assert.Equal(t, 0, a.SizeInUse())
}

func TestPushSliceExhausted(t *testing.T) {
	a, err := New(16)
	require.NoError(t, err)

	s, err := PushSlice[float64](a, 3)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Nil(t, s.Get())
	assert.ErrorIs(t, s.Err(), ErrNilBuffer)
}

func TestPushSliceZeroed(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)

	dirty, err := PushSlice[uint64](a, 4)
	require.NoError(t, err)
	for i := range dirty.Get() {
		dirty.Get()[i] = math.MaxUint64
	}
	require.NoError(t, a.Reset())

	clean, err := PushSliceZeroed[uint64](a, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 0, 0}, clean.Get())
}

func TestSliceStaleAfterReset(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)

	s, err := PushSlice[float64](a, 2)
	require.NoError(t, err)
	require.NoError(t, a.Reset())

	assert.False(t, s.Valid())
	assert.ErrorIs(t, s.Err(), ErrStale)
	assert.Nil(t, s.Get())
}

func TestPushFloat64s(t *testing.T) {
	a, err := New(32)
	require.NoError(t, err)

	v, err := a.PushFloat64s(4)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Len())
	assert.Len(t, v.Get(), 4)

	_, err = a.PushFloat64s(1)
	assert.ErrorIs(t, err, ErrExhausted)

	require.NoError(t, a.Reset())
	assert.Nil(t, v.Get())
	assert.ErrorIs(t, v.Err(), ErrStale)
}

func BenchmarkPushSlice(b *testing.B) {
	sizes := []int{3, 16, 256, 4096}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Arena_%d", size), func(b *testing.B) {
			a, err := New(1 << 20)
			require.NoError(b, err)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := PushSlice[float64](a, size); err != nil {
					_ = a.Reset()
				}
			}
		})

		b.Run(fmt.Sprintf("Builtin_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = make([]float64, size)
			}
		})
	}
}
