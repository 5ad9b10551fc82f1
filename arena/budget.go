package arena

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Budget caps the total backing memory held by the arenas that share it.
// It is safe for concurrent use. A nil *Budget imposes no limit.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
}

// NewBudget creates a Budget of limit bytes.
// If limit <= 0, usage is tracked but never refused.
func NewBudget(limit int64) *Budget {
	b := &Budget{limit: limit}
	if limit > 0 {
		b.sem = semaphore.NewWeighted(limit)
	}
	return b
}

// Limit returns the configured limit in bytes (0 if unlimited).
func (b *Budget) Limit() int64 {
	if b == nil || b.limit < 0 {
		return 0
	}
	return b.limit
}

// Used returns the bytes currently held by live arenas.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Available returns the bytes still available, or -1 if unlimited.
func (b *Budget) Available() int64 {
	if b == nil || b.sem == nil {
		return -1
	}
	return b.limit - b.used.Load()
}

// acquire is non-blocking: arena creation fails rather than waits.
func (b *Budget) acquire(n int64) error {
	if b == nil || n <= 0 {
		return nil
	}
	if b.sem != nil && !b.sem.TryAcquire(n) {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, n, b.used.Load(), b.limit)
	}
	b.used.Add(n)
	return nil
}

func (b *Budget) release(n int64) {
	if b == nil || n <= 0 {
		return
	}
	if b.sem != nil {
		b.sem.Release(n)
	}
	b.used.Add(-n)
}
