package arena

import "unsafe"

// Buffer is a view of a region of arena memory. It records the arena
// generation it was issued in, so use after Reset or Destroy is detected:
// a stale Buffer returns nil from Bytes and ErrStale from Err.
//
// The zero Buffer, returned by a failed Push, is never valid.
type Buffer struct {
	arena *Arena
	gen   uint64
	off   uintptr
	n     int
}

// Len returns the size of the region in bytes.
func (b Buffer) Len() int {
	return b.n
}

// Offset returns the position of the region within the arena.
func (b Buffer) Offset() int {
	return int(b.off)
}

// Err reports why the buffer cannot be used, or nil if it can.
func (b Buffer) Err() error {
	switch {
	case b.arena == nil:
		return ErrNilBuffer
	case b.arena.destroyed, b.gen != b.arena.gen:
		return ErrStale
	}
	return nil
}

// Valid reports whether the buffer is still backed by live arena memory.
func (b Buffer) Valid() bool {
	return b.Err() == nil
}

// Bytes returns the region as a slice, or nil if the buffer is not valid.
// The slice must not be retained past the next Reset or Destroy of the arena.
func (b Buffer) Bytes() []byte {
	if !b.Valid() {
		return nil
	}
	end := b.off + uintptr(b.n)
	return b.arena.buf[b.off:end:end]
}

// Slice is a typed view of arena memory holding n values of T.
type Slice[T Scalar] struct {
	buf Buffer
	n   int
}

// Len returns the number of elements.
func (s Slice[T]) Len() int {
	return s.n
}

// Buffer returns the underlying byte view.
func (s Slice[T]) Buffer() Buffer {
	return s.buf
}

// Err reports why the slice cannot be used, or nil if it can.
func (s Slice[T]) Err() error {
	return s.buf.Err()
}

// Valid reports whether the slice is still backed by live arena memory.
func (s Slice[T]) Valid() bool {
	return s.buf.Valid()
}

// Get returns the elements, or nil if the slice is not valid.
// The result must not be retained past the next Reset or Destroy of the arena.
func (s Slice[T]) Get() []T {
	p := s.buf.Bytes()
	if p == nil {
		return nil
	}
	if s.n == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&p[0])), s.n)
}

// Clone copies the elements to a new heap slice that stays usable after the
// arena is reset or destroyed. It returns nil if the slice is not valid.
func (s Slice[T]) Clone() []T {
	v := s.Get()
	if v == nil {
		return nil
	}
	return append(make([]T, 0, len(v)), v...)
}
