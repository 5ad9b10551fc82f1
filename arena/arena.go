package arena

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"
)

// Alignment is the byte alignment of every region handed out by Push.
// It matches the natural alignment of float64.
const Alignment = 8

// MaxCapacity is the largest backing store New accepts.
const MaxCapacity = math.MaxInt32

// Arena is a fixed-capacity bump allocator. Not goroutine-safe.
// Use SafeArena for concurrent access.
type Arena struct {
	name     string
	buf      []byte  // backing memory
	capacity int     // len(buf) at construction, kept for budget release
	offset   uintptr // allocation offset within buf
	gen      uint64  // advanced by Reset and Destroy
	mapped   bool
	unmap    func([]byte) error
	budget   *Budget
	logger   *slog.Logger

	destroyed bool
	stats     counters
}

type counters struct {
	pushes uint64
	failed uint64
	resets uint64
	peak   uintptr
}

// New creates an Arena backed by a single block of capacity bytes.
// It returns an error, and no arena, when the backing block cannot be
// obtained.
func New(capacity int, opts ...Option) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	cfg := newConfig(opts)

	if err := cfg.budget.acquire(int64(capacity)); err != nil {
		cfg.logger.Warn("arena budget exceeded",
			"name", cfg.name,
			"capacity", capacity,
			"budget_available", cfg.budget.Available(),
		)
		return nil, err
	}

	buf, unmap, err := allocBacking(capacity, cfg.mmap)
	if err != nil {
		cfg.budget.release(int64(capacity))
		cfg.logger.Error("arena backing allocation failed",
			"name", cfg.name,
			"capacity", capacity,
			"error", err,
		)
		return nil, err
	}

	a := &Arena{
		name:     cfg.name,
		buf:      buf,
		capacity: capacity,
		gen:      1,
		mapped:   cfg.mmap,
		unmap:    unmap,
		budget:   cfg.budget,
		logger:   cfg.logger,
	}
	a.logger.Debug("arena created",
		"name", a.name,
		"capacity", capacity,
		"mmap", a.mapped,
	)
	return a, nil
}

// Push reserves size bytes starting at the current offset rounded up to
// Alignment and advances the offset past them. The returned Buffer is a view
// into the arena; its contents are not zeroed.
//
// Push never grows the backing store. When the request does not fit it
// returns ErrExhausted and a zero Buffer, leaving the arena unchanged.
func (a *Arena) Push(size int) (Buffer, error) {
	if a.destroyed {
		return Buffer{}, ErrDestroyed
	}
	if size < 0 {
		return Buffer{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	a.stats.pushes++

	if size == 0 {
		return Buffer{arena: a, gen: a.gen, off: a.offset}, nil
	}

	off := alignUp(a.offset)
	limit := uintptr(len(a.buf))
	if off > limit || uintptr(size) > limit-off {
		a.stats.failed++
		a.logger.Debug("arena exhausted",
			"name", a.name,
			"size", size,
			"offset", a.offset,
			"capacity", len(a.buf),
		)
		return Buffer{}, ErrExhausted
	}

	a.offset = off + uintptr(size)
	if a.offset > a.stats.peak {
		a.stats.peak = a.offset
	}
	return Buffer{arena: a, gen: a.gen, off: off, n: size}, nil
}

// Reset rewinds the offset to zero and keeps the backing store for reuse.
// Every Buffer issued before the reset becomes stale.
func (a *Arena) Reset() error {
	if a.destroyed {
		return ErrDestroyed
	}
	a.offset = 0
	a.gen++
	a.stats.resets++
	return nil
}

// Destroy releases the backing store in one operation and invalidates every
// Buffer the arena issued. Calling Destroy more than once is a no-op.
func (a *Arena) Destroy() error {
	if a.destroyed {
		return nil
	}
	a.destroyed = true
	a.gen++

	var err error
	if a.unmap != nil {
		if uerr := a.unmap(a.buf); uerr != nil {
			err = fmt.Errorf("%w: %w", ErrUnmapFailed, uerr)
		}
	}
	a.budget.release(int64(a.capacity))

	a.logger.Debug("arena destroyed",
		"name", a.name,
		"capacity", a.capacity,
		"peak", a.stats.peak,
		"pushes", a.stats.pushes,
		"failed_pushes", a.stats.failed,
	)

	a.buf = nil
	a.offset = 0
	return err
}

// Destroyed reports whether Destroy has been called.
func (a *Arena) Destroyed() bool {
	return a.destroyed
}

// Name returns the name given with WithName, or "" if none was set.
func (a *Arena) Name() string {
	return a.name
}

// Generation returns the current generation. Buffers issued in an earlier
// generation are stale.
func (a *Arena) Generation() uint64 {
	return a.gen
}

// allocBacking returns a zeroed, Alignment-aligned block of size bytes and
// the function that releases it (nil for heap memory).
func allocBacking(size int, mmap bool) ([]byte, func([]byte) error, error) {
	if mmap {
		return mapAnon(size)
	}
	// Allocate as words so the base address is 8-byte aligned even for tiny
	// capacities.
	words := make([]uint64, (size+Alignment-1)/Alignment)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size), nil, nil
}

// alignUp aligns the offset up to Alignment.
func alignUp(off uintptr) uintptr {
	const mask = Alignment - 1
	return (off + mask) &^ mask
}
