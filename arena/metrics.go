package arena

// Capacity returns the size of the backing store in bytes, or 0 after Destroy.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// SizeInUse returns the current offset: the bytes handed out since creation
// or the last Reset, including alignment padding.
func (a *Arena) SizeInUse() int {
	return int(a.offset)
}

// Available returns the bytes left before the arena is exhausted, ignoring
// the padding the next Push may need.
func (a *Arena) Available() int {
	return len(a.buf) - int(a.offset)
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		Name:         a.name,
		Capacity:     a.Capacity(),
		SizeInUse:    a.SizeInUse(),
		Available:    a.Available(),
		Peak:         int(a.stats.peak),
		Pushes:       a.stats.pushes,
		FailedPushes: a.stats.failed,
		Resets:       a.stats.resets,
		Generation:   a.gen,
		Utilization:  a.Utilization(),
		Mapped:       a.mapped,
		Destroyed:    a.destroyed,
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	Name         string
	Capacity     int     // Backing store size in bytes
	SizeInUse    int     // Current offset in bytes
	Available    int     // Capacity minus SizeInUse
	Peak         int     // Highest offset reached, across resets
	Pushes       uint64  // Push calls that reached the allocator
	FailedPushes uint64  // Pushes refused with ErrExhausted
	Resets       uint64
	Generation   uint64
	Utilization  float64 // Ratio of used to total capacity (0.0-1.0)
	Mapped       bool    // Backed by an anonymous mapping
	Destroyed    bool
}
