package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Allocation, Reset and Destroy are serialized. Checking a Buffer's validity
// is not: callers that reset or destroy a shared arena must ensure no other
// goroutine is still reading views issued by it.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafe creates a new thread-safe arena. See New.
func NewSafe(capacity int, opts ...Option) (*SafeArena, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// Push thread-safely reserves size bytes. See Arena.Push.
func (s *SafeArena) Push(size int) (Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Push(size)
}

// PushFloat64s thread-safely reserves n float64 values.
func (s *SafeArena) PushFloat64s(n int) (Slice[float64], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.PushFloat64s(n)
}

// Reset thread-safely rewinds the arena for reuse.
func (s *SafeArena) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Reset()
}

// Destroy thread-safely releases the backing store.
func (s *SafeArena) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Destroy()
}

// SafePushSlice thread-safely reserves n values of T. See PushSlice.
func SafePushSlice[T Scalar](s *SafeArena, n int) (Slice[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PushSlice[T](s.a, n)
}

// SafePushSliceZeroed thread-safely reserves n zeroed values of T.
func SafePushSliceZeroed[T Scalar](s *SafeArena, n int) (Slice[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PushSliceZeroed[T](s.a, n)
}

// SizeInUse thread-safely returns the current offset.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// Capacity thread-safely returns the backing store size.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
