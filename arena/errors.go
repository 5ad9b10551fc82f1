package arena

import "errors"

var (
	// ErrInvalidCapacity is returned by New for a non-positive capacity or one
	// above MaxCapacity.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")

	// ErrInvalidSize is returned by Push for a negative size or an element
	// count whose byte size overflows.
	ErrInvalidSize = errors.New("arena: invalid size")

	// ErrExhausted is returned by Push when the request does not fit in the
	// remaining capacity. It is recoverable: the arena is left unchanged.
	ErrExhausted = errors.New("arena: exhausted")

	// ErrDestroyed is returned by operations on an arena after Destroy.
	ErrDestroyed = errors.New("arena: use after Destroy")

	// ErrStale is reported by a Buffer or Slice whose arena has since been
	// reset or destroyed.
	ErrStale = errors.New("arena: stale buffer")

	// ErrNilBuffer is reported by the zero Buffer, which a failed Push returns.
	ErrNilBuffer = errors.New("arena: nil buffer")

	// ErrBudgetExceeded is returned by New when the shared Budget cannot cover
	// the requested capacity.
	ErrBudgetExceeded = errors.New("arena: memory budget exceeded")

	// ErrMapFailed is returned by New when the memory mapping backing the
	// arena cannot be created.
	ErrMapFailed = errors.New("arena: mmap failed")

	// ErrUnmapFailed is returned by Destroy when the mapping cannot be released.
	ErrUnmapFailed = errors.New("arena: munmap failed")

	// ErrMmapUnsupported is returned by New with WithMmap on platforms without
	// memory mapping.
	ErrMmapUnsupported = errors.New("arena: mmap not supported on this platform")
)
